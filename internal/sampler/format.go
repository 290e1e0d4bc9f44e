package sampler

import (
	"regexp"
	"strings"

	"github.com/chatreveal/chatscope/internal/chatlog"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FormatForLLM renders sampled messages as compact "sender: text" lines for
// prompt embedding. Senders shrink to the first 8 runes of their first
// name; texts truncate at maxChars and collapse runs of whitespace.
func FormatForLLM(msgs []chatlog.Message, maxChars int) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		sender := m.Sender
		if i := strings.IndexByte(sender, ' '); i > 0 {
			sender = sender[:i]
		}
		sender = chatlog.Prefix(sender, 8)

		text := chatlog.Prefix(m.Text, maxChars)
		text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

		lines = append(lines, sender+": "+text)
	}
	return strings.Join(lines, "\n")
}
