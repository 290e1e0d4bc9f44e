package stats

import (
	"sort"
	"strings"

	"github.com/chatreveal/chatscope/internal/chatlog"
)

// Edge is one undirected mention-network edge. A and B are the sorted pair;
// Weight is how many messages by either mention the other.
type Edge struct {
	A      string `json:"source"`
	B      string `json:"target"`
	Weight int    `json:"value"`
}

// MentionNetwork builds the who-mentions-whom graph. For each message it
// checks every other participant's name with three escalating matches:
// whole-name substring, any name token longer than two characters, and a
// loose subsequence covering at least half the name. System-like senders
// are excluded from the participant universe.
func MentionNetwork(msgs []chatlog.Message, participants []string) []Edge {
	humans := chatlog.HumanParticipants(participants)

	weights := make(map[[2]string]int)
	for _, m := range msgs {
		if chatlog.IsSystemSender(m.Sender) {
			continue
		}
		text := strings.ToLower(m.Text)
		for _, other := range humans {
			if other == m.Sender {
				continue
			}
			if looseMatch(text, other) {
				a, b := m.Sender, other
				if a > b {
					a, b = b, a
				}
				weights[[2]string{a, b}]++
			}
		}
	}

	edges := make([]Edge, 0, len(weights))
	for pair, w := range weights {
		edges = append(edges, Edge{A: pair[0], B: pair[1], Weight: w})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// looseMatch reports whether text plausibly mentions name. text must
// already be lowercased.
func looseMatch(text, name string) bool {
	n := strings.ToLower(name)
	if strings.Contains(text, n) {
		return true
	}
	for _, part := range strings.Fields(n) {
		if len(part) > 2 && strings.Contains(text, part) {
			return true
		}
	}
	// Last resort: at least half the name's characters appear in order.
	nameRunes := []rune(n)
	i := 0
	for _, c := range text {
		if i < len(nameRunes) && c == nameRunes[i] {
			i++
		}
	}
	return float64(i) >= float64(len(nameRunes))/2
}
