package report

import (
	"log/slog"
	"strings"

	"github.com/chatreveal/chatscope/internal/analyzer"
	"github.com/chatreveal/chatscope/internal/chatlog"
	"github.com/chatreveal/chatscope/internal/stats"
)

const (
	// Quotes and dank messages below this word count are too thin to land.
	minQuoteWords = 3

	contextBefore = 2
	contextAfter  = 1
	contextMax    = 4
)

// Assembler builds the final report from statistics and the two AI
// results. It holds the full unfiltered dataset for context lookups.
type Assembler struct {
	dataset *chatlog.Dataset
	logger  *slog.Logger
}

func NewAssembler(dataset *chatlog.Dataset, logger *slog.Logger) *Assembler {
	return &Assembler{dataset: dataset, logger: logger}
}

// Assemble merges everything into one Report. Quiz quotes and dank
// messages get the minimum-word filter; dank messages additionally
// deduplicate by case-insensitive trimmed text and gain surrounding
// conversation context.
func (a *Assembler) Assemble(meta Metadata, summary stats.Summary, core analyzer.CoreResult, content analyzer.ContentResult) *Report {
	quiz := make([]analyzer.QuizItem, 0, len(content.WhoSaidThis))
	for _, q := range content.WhoSaidThis {
		if wordCount(q.Quote) >= minQuoteWords {
			quiz = append(quiz, q)
		}
	}

	dankest := a.dedupeDankest(content.DankestMessages)
	for i := range dankest {
		dankest[i].ContextChat = a.contextFor(dankest[i].Sender, dankest[i].Message)
	}

	a.logger.Info("report assembled",
		"run_id", meta.RunID,
		"quiz_items", len(quiz),
		"dankest", len(dankest),
	)

	return &Report{
		Metadata:        meta,
		Stats:           summary,
		Personalities:   core.Personalities,
		Roles:           core.Roles,
		Alignments:      core.Alignments,
		ClosestPairs:    core.Pairs,
		Vocabulary:      content.Vocabulary,
		Topics:          content.Topics,
		WhoSaidThis:     quiz,
		DankestMessages: dankest,
		Sentiment:       content.Sentiment,
	}
}

func (a *Assembler) dedupeDankest(moments []analyzer.DankMessage) []analyzer.DankMessage {
	seen := make(map[string]bool)
	out := make([]analyzer.DankMessage, 0, len(moments))
	for _, m := range moments {
		if wordCount(m.Message) < minQuoteWords {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m.Message))
		if seen[key] {
			a.logger.Debug("dropped duplicate dank message", "text", chatlog.Prefix(m.Message, 50))
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// contextFor locates the original message by sender and text prefix, then
// attaches up to contextMax surrounding messages, skipping media
// placeholders and near-empty entries. The search space excludes
// system-like senders so an assistant bot can neither match as the target
// nor show up as a neighbor. A failed lookup yields an empty list, not an
// error; the model paraphrases quotes often enough.
func (a *Assembler) contextFor(sender, text string) []analyzer.ContextMessage {
	msgs := make([]chatlog.Message, 0, len(a.dataset.Messages))
	for _, m := range a.dataset.Messages {
		if !chatlog.IsSystemSender(m.Sender) {
			msgs = append(msgs, m)
		}
	}
	needle := strings.ToLower(chatlog.Prefix(text, 30))

	target := -1
	for i, m := range msgs {
		if m.Sender == sender && strings.Contains(strings.ToLower(m.Text), needle) {
			target = i
			break
		}
	}
	if target < 0 {
		return []analyzer.ContextMessage{}
	}

	var context []analyzer.ContextMessage
	add := func(m chatlog.Message) {
		sender := m.Sender
		if i := strings.IndexByte(sender, ' '); i > 0 {
			sender = sender[:i]
		}
		context = append(context, analyzer.ContextMessage{
			Sender: sender,
			Text:   chatlog.Prefix(m.Text, 150),
		})
	}
	usable := func(m chatlog.Message) bool {
		return m.Text != chatlog.MediaPlaceholder && len([]rune(m.Text)) > 2
	}

	for i := target - contextBefore; i < target; i++ {
		if i >= 0 && usable(msgs[i]) {
			add(msgs[i])
		}
	}
	add(msgs[target])
	for i := target + 1; i <= target+contextAfter && i < len(msgs); i++ {
		if usable(msgs[i]) {
			add(msgs[i])
		}
	}

	if len(context) > contextMax {
		context = context[len(context)-contextMax:]
	}
	return context
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
