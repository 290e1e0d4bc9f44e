package chatlog

import (
	"strings"
	"unicode/utf8"
)

// MediaPlaceholder is what WhatsApp substitutes for attachments in a
// text-only export.
const MediaPlaceholder = "<Media omitted>"

var systemSenders = []string{"Meta AI", "Facebook", "System"}

var reactionGlyphs = map[string]bool{
	"👍": true, "👎": true, "❤️": true, "😂": true, "🙏": true,
}

var fillerWords = map[string]bool{
	"ok": true, "okay": true, "k": true, "hmm": true,
	"yes": true, "no": true, "haan": true, "nahi": true,
}

// IsSystemSender reports whether a sender is a platform artifact rather
// than a human participant (assistant bots, system notices, bare phone
// numbers from unsaved contacts).
func IsSystemSender(name string) bool {
	n := strings.TrimSpace(name)
	for _, s := range systemSenders {
		if n == s {
			return true
		}
	}
	return strings.Contains(n, "Meta AI") || strings.Contains(n, "+91")
}

// HumanParticipants filters a participant list down to real people,
// preserving order.
func HumanParticipants(participants []string) []string {
	var out []string
	for _, p := range participants {
		if !IsSystemSender(p) {
			out = append(out, p)
		}
	}
	return out
}

// Preprocess drops noise messages: near-empty text, lone reaction glyphs,
// filler words, media placeholders, and duplicate sender+prefix keys.
// The result feeds the sampler and quality-oriented statistics; raw counts
// keep using the unfiltered dataset.
func Preprocess(msgs []Message) []Message {
	var cleaned []Message
	seen := make(map[string]bool)

	for _, m := range msgs {
		text := strings.TrimSpace(m.Text)
		if utf8.RuneCountInString(text) < 2 {
			continue
		}
		if reactionGlyphs[text] {
			continue
		}
		if fillerWords[strings.ToLower(text)] {
			continue
		}
		if text == MediaPlaceholder {
			continue
		}

		key := m.Sender + ":" + Prefix(text, 50)
		if seen[key] {
			continue
		}
		seen[key] = true

		cleaned = append(cleaned, m)
	}

	return cleaned
}

// Prefix returns the first n runes of s.
func Prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
