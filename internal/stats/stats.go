// Package stats computes behavioral metrics over a parsed chat dataset.
// Every function is read-only over its input and returns empty maps for
// empty or unparseable datasets.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/chatreveal/chatscope/internal/chatlog"
)

const (
	// A gap longer than this between neighboring messages splits two
	// conversations, defining starters and killers.
	conversationGap = 2 * time.Hour

	// DefaultGhostTimeout is the silence threshold that charges a
	// ghosting event.
	DefaultGhostTimeout = 60 * time.Minute

	replyMinGap = time.Second
	replyMaxGap = 12 * time.Hour
)

type stamped struct {
	msg chatlog.Message
	ts  time.Time
}

// byTimestamp returns messages with parseable timestamps in chronological
// order. Messages whose date/time fields don't parse are left out of the
// time-based metrics rather than poisoning the ordering.
func byTimestamp(msgs []chatlog.Message) []stamped {
	var out []stamped
	for _, m := range msgs {
		if ts, ok := chatlog.Timestamp(m); ok {
			out = append(out, stamped{msg: m, ts: ts})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ts.Before(out[j].ts) })
	return out
}

// StartersAndKillers counts, per sender, messages that open a conversation
// (no predecessor, or a gap over two hours since the previous message) and
// messages that close one (symmetric rule against the following message).
func StartersAndKillers(msgs []chatlog.Message) (starters, killers map[string]int) {
	starters = make(map[string]int)
	killers = make(map[string]int)

	sorted := byTimestamp(msgs)
	for i, curr := range sorted {
		if i == 0 || curr.ts.Sub(sorted[i-1].ts) > conversationGap {
			starters[curr.msg.Sender]++
		}
		if i == len(sorted)-1 || sorted[i+1].ts.Sub(curr.ts) > conversationGap {
			killers[curr.msg.Sender]++
		}
	}
	return starters, killers
}

// GhostIndex finds silences longer than timeout between adjacent messages
// from different senders. Each event increments two views: ghosters charges
// the sender of the earlier message (they spoke and then the thread died),
// ghosted charges the sender whose reply only came after the long wait.
// A sender never ghosts themselves; the rule fires only across a sender
// change.
func GhostIndex(msgs []chatlog.Message, timeout time.Duration) (ghosters, ghosted map[string]int) {
	ghosters = make(map[string]int)
	ghosted = make(map[string]int)
	if timeout <= 0 {
		timeout = DefaultGhostTimeout
	}

	sorted := byTimestamp(msgs)
	for i := 0; i+1 < len(sorted); i++ {
		curr, next := sorted[i], sorted[i+1]
		if next.msg.Sender == curr.msg.Sender {
			continue
		}
		if next.ts.Sub(curr.ts) > timeout {
			ghosters[curr.msg.Sender]++
			ghosted[next.msg.Sender]++
		}
	}
	return ghosters, ghosted
}

// ReplySpeeds reports each sender's mean reply latency in minutes, rounded
// to two decimals. Only sender-change gaps inside (1s, 12h) count as
// replies; gaps outside the band are non-replies, not errors.
func ReplySpeeds(msgs []chatlog.Message) map[string]float64 {
	gaps := make(map[string][]time.Duration)

	sorted := byTimestamp(msgs)
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if curr.msg.Sender == prev.msg.Sender {
			continue
		}
		gap := curr.ts.Sub(prev.ts)
		if gap > replyMinGap && gap < replyMaxGap {
			gaps[curr.msg.Sender] = append(gaps[curr.msg.Sender], gap)
		}
	}

	speeds := make(map[string]float64)
	for sender, ds := range gaps {
		var total time.Duration
		for _, d := range ds {
			total += d
		}
		mins := total.Minutes() / float64(len(ds))
		speeds[sender] = math.Round(mins*100) / 100
	}
	return speeds
}

// MessageRatios returns per-sender raw counts and each sender's share of
// the total as a two-decimal percentage string.
func MessageRatios(msgs []chatlog.Message) (counts map[string]int, ratios map[string]string) {
	counts = make(map[string]int)
	ratios = make(map[string]string)
	for _, m := range msgs {
		counts[m.Sender]++
	}
	if len(msgs) == 0 {
		return counts, ratios
	}
	total := float64(len(msgs))
	for sender, c := range counts {
		ratios[sender] = fmt.Sprintf("%.2f", float64(c)/total*100)
	}
	return counts, ratios
}

// Quick computes the per-sender counts and average message lengths over the
// noise-filtered message set, the headline numbers of the report's stats
// section.
func Quick(processed []chatlog.Message) QuickStats {
	counts := make(map[string]int)
	lengths := make(map[string][]int)
	for _, m := range processed {
		counts[m.Sender]++
		lengths[m.Sender] = append(lengths[m.Sender], len([]rune(m.Text)))
	}

	avg := make(map[string]float64)
	for sender, ls := range lengths {
		total := 0
		for _, l := range ls {
			total += l
		}
		avg[sender] = math.Round(float64(total)/float64(len(ls))*10) / 10
	}

	return QuickStats{
		MessageCounts: counts,
		AvgLength:     avg,
		TotalAnalyzed: len(processed),
	}
}

// QuickStats is the headline portion of the report's stats section.
type QuickStats struct {
	MessageCounts map[string]int     `json:"message_counts"`
	AvgLength     map[string]float64 `json:"avg_length"`
	TotalAnalyzed int                `json:"total_analyzed"`
}

// Summary aggregates every engine metric for the assembled report.
type Summary struct {
	QuickStats
	MessageRatios  map[string]string  `json:"message_ratios"`
	Starters       map[string]int     `json:"conversation_starters"`
	Killers        map[string]int     `json:"conversation_killers"`
	Ghosters       map[string]int     `json:"biggest_ghosters"`
	Ghosted        map[string]int     `json:"most_ghosted"`
	ReplySpeeds    map[string]float64 `json:"reply_speed_minutes"`
	EmojiCounts    map[string]int     `json:"emoji_counts"`
	MentionNetwork []Edge             `json:"mention_network"`
	Badges         map[string]string  `json:"badges"`
}

// Summarize runs the full engine over a dataset. processed is the
// noise-filtered view used for quality metrics; raw counts come from the
// dataset itself.
func Summarize(ds *chatlog.Dataset, processed []chatlog.Message) Summary {
	starters, killers := StartersAndKillers(ds.Messages)
	ghosters, ghosted := GhostIndex(ds.Messages, DefaultGhostTimeout)
	_, ratios := MessageRatios(ds.Messages)

	return Summary{
		QuickStats:     Quick(processed),
		MessageRatios:  ratios,
		Starters:       starters,
		Killers:        killers,
		Ghosters:       ghosters,
		Ghosted:        ghosted,
		ReplySpeeds:    ReplySpeeds(ds.Messages),
		EmojiCounts:    EmojiFrequency(ds.Messages),
		MentionNetwork: MentionNetwork(ds.Messages, ds.Participants),
		Badges:         Badges(ds.Messages),
	}
}
