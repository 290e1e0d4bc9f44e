// Package analyzer drives the two generative-text calls of an analysis
// run and normalizes their replies into typed results.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chatreveal/chatscope/internal/chatlog"
	"github.com/chatreveal/chatscope/internal/groq"
	"github.com/chatreveal/chatscope/internal/sampler"
)

const (
	coreLineChars    = 90
	coreTemperature  = 0.4
	coreMaxTokens    = 2500
	contentLineChars = 95
	contentTemp      = 0.7
	contentMaxTokens = 4000
)

type Analyzer struct {
	llm    *groq.Client
	logger *slog.Logger
}

func New(llm *groq.Client, logger *slog.Logger) *Analyzer {
	return &Analyzer{llm: llm, logger: logger}
}

// CoreAnalysis asks the model who everyone is: personalities, roles,
// alignments and closest pairs. Any failure (exhausted retries or a reply
// that won't parse) is logged and replaced with the empty core shape; the
// pipeline never aborts because one call went bad.
func (a *Analyzer) CoreAnalysis(ctx context.Context, participants []string, sample []chatlog.Message) CoreResult {
	lines := sampler.FormatForLLM(sample, coreLineChars)
	prompt := fmt.Sprintf(coreUserPrompt, len(participants), strings.Join(participants, ", "), lines)

	a.logger.Info("core analysis call", "samples", len(sample), "participants", len(participants))

	raw, err := a.llm.Complete(ctx, []groq.ChatMessage{
		{Role: "system", Content: coreSystemPrompt},
		{Role: "user", Content: prompt},
	}, coreTemperature, coreMaxTokens)
	if err != nil {
		a.logger.Error("core analysis failed", "error", err)
		return EmptyCore()
	}

	var result CoreResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		a.logger.Error("core analysis returned unparseable JSON", "error", err, "raw_len", len(raw))
		return EmptyCore()
	}

	fillCore(&result)
	a.logger.Info("core analysis complete",
		"personalities", len(result.Personalities),
		"roles", len(result.Roles),
		"alignments", len(result.Alignments),
		"pairs", len(result.Pairs),
	)
	return result
}

// ContentAnalysis asks the model what the chat contains: vocabulary,
// topics, quiz material, dankest messages and sentiment. Same degradation
// contract as CoreAnalysis.
func (a *Analyzer) ContentAnalysis(ctx context.Context, participants []string, sample []chatlog.Message) ContentResult {
	lines := sampler.FormatForLLM(sample, contentLineChars)
	prompt := fmt.Sprintf(contentUserPrompt, len(participants), strings.Join(participants, ", "), lines)

	a.logger.Info("content analysis call", "samples", len(sample), "participants", len(participants))

	raw, err := a.llm.Complete(ctx, []groq.ChatMessage{
		{Role: "system", Content: contentSystemPrompt},
		{Role: "user", Content: prompt},
	}, contentTemp, contentMaxTokens)
	if err != nil {
		a.logger.Error("content analysis failed", "error", err)
		return EmptyContent()
	}

	var result ContentResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		a.logger.Error("content analysis returned unparseable JSON", "error", err, "raw_len", len(raw))
		return EmptyContent()
	}

	fillContent(&result)
	a.logger.Info("content analysis complete",
		"vocabulary", len(result.Vocabulary),
		"topics", len(result.Topics),
		"who_said_this", len(result.WhoSaidThis),
		"dankest", len(result.DankestMessages),
	)
	return result
}

// fillCore and fillContent replace nil sections with their empty values so
// every report section serializes as [] or {}, never null.

func fillCore(r *CoreResult) {
	if r.Personalities == nil {
		r.Personalities = []Personality{}
	}
	if r.Roles == nil {
		r.Roles = map[string]RoleHolder{}
	}
	if r.Alignments == nil {
		r.Alignments = []Alignment{}
	}
	if r.Pairs == nil {
		r.Pairs = []Pair{}
	}
}

func fillContent(r *ContentResult) {
	if r.Vocabulary == nil {
		r.Vocabulary = []VocabEntry{}
	}
	if r.Topics == nil {
		r.Topics = []Topic{}
	}
	if r.WhoSaidThis == nil {
		r.WhoSaidThis = []QuizItem{}
	}
	if r.DankestMessages == nil {
		r.DankestMessages = []DankMessage{}
	}
	if (r.Sentiment == Sentiment{}) {
		r.Sentiment = Sentiment{Mood: "unknown", Energy: "unknown", Vibe: "unknown"}
	}
}
