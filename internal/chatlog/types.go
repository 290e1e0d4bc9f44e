package chatlog

// Format identifies which chat application produced a transcript export.
type Format string

const (
	FormatWhatsApp Format = "whatsapp"
	FormatTelegram Format = "telegram"
	FormatDiscord  Format = "discord"
	FormatUnknown  Format = "unknown"
)

// Message is a single parsed transcript line. Date and Time keep the export's
// original textual form; Timestamp derives the absolute instant on demand.
type Message struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Sender string `json:"sender"`
	Text   string `json:"message"`
}

// Dataset is the parsed transcript: messages in transcript line order plus
// the distinct participants in first-appearance order.
type Dataset struct {
	Messages     []Message `json:"messages"`
	Participants []string  `json:"participants"`
	Format       Format    `json:"format"`
}
