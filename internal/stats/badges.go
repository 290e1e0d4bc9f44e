package stats

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/chatreveal/chatscope/internal/chatlog"
)

var laughterPattern = regexp.MustCompile(`(?i)(haha|lol|lmao|😂)`)

// capsRatioThreshold flags a message as shouted when more than this share
// of its letters are uppercase (and it has at least one letter).
const capsRatioThreshold = 0.6

type badgeCounters struct {
	totalWords      int
	messageCount    int
	laughs          int
	capsMessages    int
	questions       int
	nightMessages   int
	morningMessages int
	weekendMessages int
	consecutive     int
}

func (c *badgeCounters) avgWords() float64 {
	if c.messageCount == 0 {
		return 0
	}
	return float64(c.totalWords) / float64(c.messageCount)
}

func (c *badgeCounters) consRatio() float64 {
	if c.messageCount == 0 {
		return 0
	}
	return float64(c.consecutive) / float64(c.messageCount)
}

// Badges assigns the fixed catalogue of superlatives: each badge goes to
// the participant maximizing (or minimizing) one metric, ties broken by
// first-encountered order. System-like senders never hold badges.
func Badges(msgs []chatlog.Message) map[string]string {
	counters := make(map[string]*badgeCounters)
	var order []string

	for _, st := range byTimestampFiltered(msgs) {
		sender := st.msg.Sender
		c, ok := counters[sender]
		if !ok {
			c = &badgeCounters{}
			counters[sender] = c
			order = append(order, sender)
		}

		text := st.msg.Text
		c.totalWords += len(strings.Fields(text))
		c.messageCount++

		if laughterPattern.MatchString(text) {
			c.laughs++
		}
		if shoutRatio(text) > capsRatioThreshold {
			c.capsMessages++
		}
		if strings.Contains(text, "?") {
			c.questions++
		}

		hour := st.ts.Hour()
		if hour >= 0 && hour < 4 {
			c.nightMessages++
		}
		if hour >= 6 && hour < 10 {
			c.morningMessages++
		}
		if wd := st.ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
			c.weekendMessages++
		}

		if st.prevSender == sender {
			c.consecutive++
		}
	}

	if len(order) == 0 {
		return map[string]string{}
	}

	top := func(metric func(*badgeCounters) float64, highest bool) string {
		best := order[0]
		for _, sender := range order[1:] {
			mv, bv := metric(counters[sender]), metric(counters[best])
			if (highest && mv > bv) || (!highest && mv < bv) {
				best = sender
			}
		}
		return best
	}

	badges := map[string]string{
		"💬 Dry Texter":           top(func(c *badgeCounters) float64 { return c.avgWords() }, false),
		"🧠 Paragraph Writer":     top(func(c *badgeCounters) float64 { return c.avgWords() }, true),
		"😂 LOL Spammer":          top(func(c *badgeCounters) float64 { return float64(c.laughs) }, true),
		"🔠 CAPS LOCK Abuser":     top(func(c *badgeCounters) float64 { return float64(c.capsMessages) }, true),
		"❓ Question Mark Addict": top(func(c *badgeCounters) float64 { return float64(c.questions) }, true),
		"📢 Rant Mode Activated":  top(func(c *badgeCounters) float64 { return c.consRatio() }, true),
		"🌙 Night Owl":            top(func(c *badgeCounters) float64 { return float64(c.nightMessages) }, true),
		"☀️ Early Bird":           top(func(c *badgeCounters) float64 { return float64(c.morningMessages) }, true),
		"📅 Weekend Warrior":      top(func(c *badgeCounters) float64 { return float64(c.weekendMessages) }, true),
	}
	return badges
}

// shoutRatio is uppercase letters over all letters; 0 when the message has
// no letters at all.
func shoutRatio(text string) float64 {
	var upper, letters int
	for _, r := range text {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

type stampedWithPrev struct {
	stamped
	prevSender string
}

// byTimestampFiltered orders messages chronologically, drops system-like
// senders, and annotates each entry with the previous sender for the
// consecutive-message metric.
func byTimestampFiltered(msgs []chatlog.Message) []stampedWithPrev {
	var kept []chatlog.Message
	for _, m := range msgs {
		if !chatlog.IsSystemSender(m.Sender) {
			kept = append(kept, m)
		}
	}

	sorted := byTimestamp(kept)
	out := make([]stampedWithPrev, len(sorted))
	for i, st := range sorted {
		out[i] = stampedWithPrev{stamped: st}
		if i > 0 {
			out[i].prevSender = sorted[i-1].msg.Sender
		}
	}
	return out
}
