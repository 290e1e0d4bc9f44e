package chatlog

import (
	"strings"
	"time"
)

// Layouts for the combined "date time" string, covering the date and clock
// conventions of all supported exports. Tried in order; first hit wins.
var timestampLayouts = []string{
	// WhatsApp: month-first slash dates, 12h or 24h clocks.
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 pm",
	"1/2/2006 3:04 pm",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
	"1/2/06 3:04:05 PM",
	"1/2/06 3:04 PM",
	"1/2/06 3:04:05 pm",
	"1/2/06 3:04 pm",
	// Telegram: dotted day-first dates with seconds.
	"02.01.2006 15:04:05",
	// Discord: day-MonthName dates, plus the alternate exporter's shape.
	"02-Jan-06 15:04:05",
	"02-Jan-06 15:04",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006 15:04",
	"02/01/2006 3:04 PM",
	"02/01/2006 3:04 pm",
}

// Timestamp derives the absolute instant of a message from its Date and Time
// fields. The parser never stores timestamps; consumers that need ordering
// or gap arithmetic call this. ok is false when no layout matches.
func Timestamp(m Message) (time.Time, bool) {
	combined := strings.TrimSpace(m.Date) + " " + strings.TrimSpace(m.Time)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, combined); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
