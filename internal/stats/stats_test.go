package stats

import (
	"testing"
	"time"

	"github.com/chatreveal/chatscope/internal/chatlog"
)

func msg(date, tm, sender, text string) chatlog.Message {
	return chatlog.Message{Date: date, Time: tm, Sender: sender, Text: text}
}

func TestStartersAndKillers(t *testing.T) {
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "morning"),
		msg("1/1/2024", "10:05", "Bob", "hey"),
		msg("1/1/2024", "10:10", "Alice", "what's up"),
		// Over two hours of silence: Alice killed it, Bob restarts.
		msg("1/1/2024", "14:00", "Bob", "back now"),
		msg("1/1/2024", "14:05", "Alice", "welcome back"),
	}

	starters, killers := StartersAndKillers(msgs)

	if starters["Alice"] != 1 {
		t.Errorf("expected Alice to start 1 conversation, got %d", starters["Alice"])
	}
	if starters["Bob"] != 1 {
		t.Errorf("expected Bob to start 1 conversation, got %d", starters["Bob"])
	}
	if killers["Alice"] != 2 {
		t.Errorf("expected Alice to kill 2 conversations, got %d", killers["Alice"])
	}
	if killers["Bob"] != 0 {
		t.Errorf("expected Bob to kill none, got %d", killers["Bob"])
	}
}

func TestStartersAndKillers_IgnoresUnparseable(t *testing.T) {
	msgs := []chatlog.Message{
		msg("someday", "sometime", "Alice", "lost in time"),
		msg("1/1/2024", "10:00", "Bob", "hello"),
	}
	starters, killers := StartersAndKillers(msgs)
	if starters["Alice"] != 0 || killers["Alice"] != 0 {
		t.Errorf("expected unparseable message to be excluded, got starters=%v killers=%v", starters, killers)
	}
	if starters["Bob"] != 1 || killers["Bob"] != 1 {
		t.Errorf("expected Bob to both start and kill, got starters=%v killers=%v", starters, killers)
	}
}

func TestGhostIndex(t *testing.T) {
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "you there?"),
		// Bob replies two and a half hours later.
		msg("1/1/2024", "12:30", "Bob", "sorry, was out"),
		// Bob again after a long pause: same sender, no ghost event.
		msg("1/1/2024", "15:00", "Bob", "hello?"),
		// Alice replies within the timeout: no event.
		msg("1/1/2024", "15:30", "Alice", "here"),
	}

	ghosters, ghosted := GhostIndex(msgs, time.Hour)

	if ghosters["Alice"] != 1 {
		t.Errorf("expected Alice charged as ghoster once, got %d", ghosters["Alice"])
	}
	if ghosted["Bob"] != 1 {
		t.Errorf("expected Bob charged as ghosted once, got %d", ghosted["Bob"])
	}
	if ghosters["Bob"] != 0 {
		t.Errorf("expected same-sender gap to not count, got %d", ghosters["Bob"])
	}
	for sender, n := range ghosters {
		if n < 0 {
			t.Errorf("negative ghost count for %s: %d", sender, n)
		}
	}
}

func TestGhostIndex_ZeroTimeoutUsesDefault(t *testing.T) {
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "ping"),
		msg("1/1/2024", "10:30", "Bob", "pong"), // 30m, inside the 60m default
	}
	ghosters, _ := GhostIndex(msgs, 0)
	if len(ghosters) != 0 {
		t.Errorf("expected no ghost events inside default timeout, got %v", ghosters)
	}
}

func TestReplySpeeds(t *testing.T) {
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "hi"),
		msg("1/1/2024", "10:05", "Bob", "hey"),    // Bob replies in 5m
		msg("1/1/2024", "10:10", "Alice", "sup"),  // Alice replies in 5m
		msg("1/1/2024", "10:11", "Alice", "well"), // same sender, not a reply
		// Next day, 12h49m later: outside the reply band.
		msg("1/2/2024", "23:00", "Bob", "late"),
	}

	speeds := ReplySpeeds(msgs)

	if speeds["Bob"] != 5.0 {
		t.Errorf("expected Bob mean reply 5.00 minutes, got %v", speeds["Bob"])
	}
	if speeds["Alice"] != 5.0 {
		t.Errorf("expected Alice mean reply 5.00 minutes, got %v", speeds["Alice"])
	}
}

func TestMessageRatios(t *testing.T) {
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "one"),
		msg("1/1/2024", "10:01", "Bob", "two"),
		msg("1/1/2024", "10:02", "Bob", "three"),
	}

	counts, ratios := MessageRatios(msgs)
	if counts["Alice"] != 1 || counts["Bob"] != 2 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if ratios["Alice"] != "33.33" {
		t.Errorf("expected 33.33, got %q", ratios["Alice"])
	}
	if ratios["Bob"] != "66.67" {
		t.Errorf("expected 66.67, got %q", ratios["Bob"])
	}
}

func TestMessageRatios_SingleSender(t *testing.T) {
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "talking"),
		msg("1/1/2024", "10:01", "Alice", "to myself"),
	}
	_, ratios := MessageRatios(msgs)
	if ratios["Alice"] != "100.00" {
		t.Errorf("expected 100.00, got %q", ratios["Alice"])
	}
}

func TestQuick(t *testing.T) {
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "abcd"),   // 4 runes
		msg("1/1/2024", "10:01", "Alice", "abcdefg"), // 7 runes
		msg("1/1/2024", "10:02", "Bob", "xyz"),
	}

	qs := Quick(msgs)
	if qs.TotalAnalyzed != 3 {
		t.Errorf("expected total 3, got %d", qs.TotalAnalyzed)
	}
	if qs.MessageCounts["Alice"] != 2 || qs.MessageCounts["Bob"] != 1 {
		t.Errorf("unexpected counts: %v", qs.MessageCounts)
	}
	if qs.AvgLength["Alice"] != 5.5 {
		t.Errorf("expected Alice avg 5.5, got %v", qs.AvgLength["Alice"])
	}
	if qs.AvgLength["Bob"] != 3.0 {
		t.Errorf("expected Bob avg 3.0, got %v", qs.AvgLength["Bob"])
	}
}

func TestSummarize_EmptyDataset(t *testing.T) {
	ds := &chatlog.Dataset{Format: chatlog.FormatWhatsApp}
	s := Summarize(ds, nil)

	if s.TotalAnalyzed != 0 {
		t.Errorf("expected 0 analyzed, got %d", s.TotalAnalyzed)
	}
	if s.MessageRatios == nil || s.Starters == nil || s.Killers == nil ||
		s.Ghosters == nil || s.Ghosted == nil || s.ReplySpeeds == nil ||
		s.EmojiCounts == nil || s.MentionNetwork == nil || s.Badges == nil {
		t.Error("expected all summary sections to be non-nil for an empty dataset")
	}
}
