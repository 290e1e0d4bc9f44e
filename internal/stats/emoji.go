package stats

import "github.com/chatreveal/chatscope/internal/chatlog"

const (
	variationSelector = 0xFE0F
	zeroWidthJoiner   = 0x200D
)

// Pictographic code-point ranges: the emoji blocks plus the legacy symbol
// blocks that carry emoji presentation. Digits, '#' and '*' (keycap bases)
// fall outside every range, so keycap sequences never count.
var pictographicRanges = [...][2]rune{
	{0x1F000, 0x1F0FF}, // mahjong, dominoes, playing cards
	{0x1F1E6, 0x1F1FF}, // regional indicators (flags)
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F700, 0x1F77F}, // alchemical
	{0x1F780, 0x1F8FF}, // geometric extended, supplemental arrows-C
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA00, 0x1FAFF}, // chess symbols, symbols extended-A
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
	{0x2B00, 0x2BFF},   // misc symbols and arrows
}

func isPictographic(r rune) bool {
	for _, rng := range pictographicRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// EmojiFrequency counts emoji occurrences across all messages, keyed by the
// full grapheme cluster: a pictographic base plus any trailing variation
// selectors and zero-width-joiner continuations, so 👨‍👩‍👧 counts once, not
// three times.
func EmojiFrequency(msgs []chatlog.Message) map[string]int {
	counts := make(map[string]int)
	for _, m := range msgs {
		if chatlog.IsSystemSender(m.Sender) {
			continue
		}
		for _, cluster := range emojiClusters(m.Text) {
			counts[cluster]++
		}
	}
	return counts
}

func emojiClusters(text string) []string {
	runes := []rune(text)
	var clusters []string

	for i := 0; i < len(runes); i++ {
		if !isPictographic(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) {
			if runes[j] == variationSelector {
				j++
				continue
			}
			if runes[j] == zeroWidthJoiner && j+1 < len(runes) && isPictographic(runes[j+1]) {
				j += 2
				continue
			}
			break
		}
		clusters = append(clusters, string(runes[i:j]))
		i = j - 1
	}
	return clusters
}
