// Package pipeline runs a full analysis: detect the export format, parse,
// filter out system noise, compute statistics, sample the chat twice, and
// drive the two AI calls before assembling the final report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/chatreveal/chatscope/internal/analyzer"
	"github.com/chatreveal/chatscope/internal/chatlog"
	"github.com/chatreveal/chatscope/internal/report"
	"github.com/chatreveal/chatscope/internal/sampler"
	"github.com/chatreveal/chatscope/internal/stats"
)

const (
	coreSampleSize    = 400
	contentSampleSize = 600
	interCallDelay    = 2 * time.Second
)

// Pipeline owns everything needed to turn a raw chat export into a report.
type Pipeline struct {
	analyzer *analyzer.Analyzer
	keyCount int
	rng      *rand.Rand
	delay    time.Duration
	logger   *slog.Logger
}

// New builds a pipeline. rng may be nil, in which case sampling is
// time-seeded per run.
func New(a *analyzer.Analyzer, keyCount int, rng *rand.Rand, logger *slog.Logger) *Pipeline {
	return NewWithDelay(a, keyCount, rng, interCallDelay, logger)
}

// NewWithDelay sets the pause between the two model calls explicitly.
func NewWithDelay(a *analyzer.Analyzer, keyCount int, rng *rand.Rand, delay time.Duration, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		analyzer: a,
		keyCount: keyCount,
		rng:      rng,
		delay:    delay,
		logger:   logger,
	}
}

// Run analyzes one chat export end to end. It returns the assembled report
// together with the parsed dataset so callers can persist both.
func (p *Pipeline) Run(ctx context.Context, runID, raw string) (*report.Report, *chatlog.Dataset, error) {
	start := time.Now()

	format := chatlog.Detect(raw)
	ds := chatlog.Parse(raw, format)
	if len(ds.Messages) == 0 {
		return nil, nil, fmt.Errorf("no parseable messages in upload")
	}

	humans := chatlog.HumanParticipants(ds.Participants)
	if len(humans) == 0 {
		return nil, nil, fmt.Errorf("no human participants in upload")
	}

	p.logger.Info("analysis started",
		"run_id", runID,
		"format", string(format),
		"messages", len(ds.Messages),
		"participants", len(humans))

	humanMsgs := make([]chatlog.Message, 0, len(ds.Messages))
	for _, m := range ds.Messages {
		if !chatlog.IsSystemSender(m.Sender) {
			humanMsgs = append(humanMsgs, m)
		}
	}
	processed := chatlog.Preprocess(humanMsgs)
	summary := stats.Summarize(ds, processed)

	smp := sampler.New(processed, p.rng)

	core := p.analyzer.CoreAnalysis(ctx, humans, smp.Sample(coreSampleSize))

	if err := p.pause(ctx); err != nil {
		return nil, nil, err
	}

	content := p.analyzer.ContentAnalysis(ctx, humans, smp.Sample(contentSampleSize))

	meta := report.Metadata{
		RunID:             runID,
		TotalMessages:     len(ds.Messages),
		Participants:      humans,
		Format:            string(format),
		AnalysisTimestamp: time.Now().UTC().Format(time.RFC3339),
		AnalysisTime:      time.Since(start).Seconds(),
		APIKeysUsed:       p.keyCount,
	}

	rep := report.NewAssembler(ds, p.logger).Assemble(meta, summary, core, content)

	p.logger.Info("analysis completed",
		"run_id", runID,
		"elapsed_s", meta.AnalysisTime)

	return rep, ds, nil
}

// pause waits between the two AI calls so back-to-back requests do not trip
// provider rate limits. A zero delay skips the timer entirely.
func (p *Pipeline) pause(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
