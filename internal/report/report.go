// Package report assembles the final analysis report: it filters and
// deduplicates the AI output, enriches dank moments with surrounding
// conversation, and merges everything with the computed statistics.
package report

import (
	"github.com/chatreveal/chatscope/internal/analyzer"
	"github.com/chatreveal/chatscope/internal/stats"
)

// Metadata describes one analysis run.
type Metadata struct {
	RunID             string   `json:"run_id"`
	TotalMessages     int      `json:"total_messages"`
	Participants      []string `json:"participants"`
	Format            string   `json:"format"`
	AnalysisTimestamp string   `json:"analysis_timestamp"`
	AnalysisTime      float64  `json:"analysis_time"`
	APIKeysUsed       int      `json:"api_keys_used"`
}

// Report is the assembled output handed to the presentation layer and the
// key-value store. Constructed once per run, immutable after assembly.
// Failed AI sections hold their empty shapes, never null.
type Report struct {
	Metadata        Metadata                       `json:"metadata"`
	Stats           stats.Summary                  `json:"stats"`
	Personalities   []analyzer.Personality         `json:"personalities"`
	Roles           map[string]analyzer.RoleHolder `json:"roles"`
	Alignments      []analyzer.Alignment           `json:"alignments"`
	ClosestPairs    []analyzer.Pair                `json:"closest_pairs"`
	Vocabulary      []analyzer.VocabEntry          `json:"vocabulary"`
	Topics          []analyzer.Topic               `json:"topics"`
	WhoSaidThis     []analyzer.QuizItem            `json:"who_said_this"`
	DankestMessages []analyzer.DankMessage         `json:"dankest_messages"`
	Sentiment       analyzer.Sentiment             `json:"sentiment"`
}
