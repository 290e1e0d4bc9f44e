package chatlog

import (
	"bufio"
	"regexp"
	"strings"
)

// Line grammars per export format. WhatsApp covers both bracketed and
// dash-separated exports; Discord exporters emit two different shapes.
var (
	whatsappLine   = regexp.MustCompile(`^\[?(\d{1,2}/\d{1,2}/\d{2,4}),?\s(\d{1,2}:\d{2}(?::\d{2})?\s?(?:AM|PM|am|pm)?)\]?\s-?\s?([^:]+):\s(.+)$`)
	telegramLine   = regexp.MustCompile(`^\[(\d{2}\.\d{2}\.\d{4})\s(\d{2}:\d{2}:\d{2})\]\s([^:]+):\s?(.+)$`)
	discordLine    = regexp.MustCompile(`^\[(\d{2}-[A-Za-z]{3}-\d{2,4})\s(\d{2}:\d{2}(?::\d{2})?)\]\s([^:]+):\s(.+)$`)
	discordAltLine = regexp.MustCompile(`^([^-]+)\s-\s(\d{2}/\d{2}/\d{4})\s(\d{1,2}:\d{2}\s?(?:AM|PM)):\s(.+)$`)
)

// Parse extracts messages from a raw transcript using the given format's
// line grammar. Lines that don't match are skipped: system notices,
// multi-line continuations and media placeholders are expected, not errors.
// An unknown format falls back to the WhatsApp grammar as a best effort.
// Output order equals transcript line order.
func Parse(text string, format Format) *Dataset {
	ds := &Dataset{Format: format}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		msg, ok := parseLine(scanner.Text(), format)
		if !ok {
			continue
		}
		ds.Messages = append(ds.Messages, msg)
		if !seen[msg.Sender] {
			seen[msg.Sender] = true
			ds.Participants = append(ds.Participants, msg.Sender)
		}
	}

	return ds
}

func parseLine(line string, format Format) (Message, bool) {
	switch format {
	case FormatTelegram:
		if m := telegramLine.FindStringSubmatch(line); m != nil {
			return newMessage(m[1], m[2], m[3], m[4])
		}
	case FormatDiscord:
		if m := discordLine.FindStringSubmatch(line); m != nil {
			return newMessage(m[1], m[2], m[3], m[4])
		}
		if m := discordAltLine.FindStringSubmatch(line); m != nil {
			return newMessage(m[2], m[3], m[1], m[4])
		}
	default:
		// FormatWhatsApp, and the best-effort fallback for FormatUnknown.
		if m := whatsappLine.FindStringSubmatch(line); m != nil {
			return newMessage(m[1], m[2], m[3], m[4])
		}
	}
	return Message{}, false
}

func newMessage(date, tm, sender, text string) (Message, bool) {
	sender = strings.TrimSpace(sender)
	text = strings.TrimSpace(text)
	if sender == "" || text == "" {
		return Message{}, false
	}
	return Message{Date: date, Time: tm, Sender: sender, Text: text}, true
}
