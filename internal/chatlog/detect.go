package chatlog

import (
	"regexp"
	"strings"
)

var (
	whatsappHead   = regexp.MustCompile(`^\[?\d{1,2}/\d{1,2}/\d{2,4}`)
	telegramHead   = regexp.MustCompile(`^\[\d{2}\.\d{2}\.\d{4}`)
	discordHead    = regexp.MustCompile(`^\[\d{2}-[A-Za-z]{3}-\d{2,4}`)
	discordAltHead = regexp.MustCompile(`^[^-]+\s-\s\d{2}/\d{2}/\d{4}`)
)

// Detect classifies a raw transcript by the shape of its first non-blank
// line. Checks run in fixed priority order; no match means FormatUnknown.
func Detect(text string) Format {
	var first string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			first = line
			break
		}
	}
	if first == "" {
		return FormatUnknown
	}

	switch {
	case whatsappHead.MatchString(first):
		return FormatWhatsApp
	case telegramHead.MatchString(first):
		return FormatTelegram
	case discordHead.MatchString(first), discordAltHead.MatchString(first):
		return FormatDiscord
	}
	return FormatUnknown
}
