package stats

import (
	"testing"

	"github.com/chatreveal/chatscope/internal/chatlog"
)

func TestMentionNetwork(t *testing.T) {
	participants := []string{"Alice", "Bob", "Carol"}
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "hey bob you coming?"),
		msg("1/1/2024", "10:01", "Bob", "told carol we would"),
		msg("1/1/2024", "10:02", "Carol", "fine with it"),
		msg("1/1/2024", "10:03", "Alice", "bob again, hurry up"),
	}

	edges := MentionNetwork(msgs, participants)

	want := map[[2]string]int{
		{"Alice", "Bob"}: 2,
		{"Bob", "Carol"}: 1,
	}
	for _, e := range edges {
		key := [2]string{e.A, e.B}
		if w, ok := want[key]; ok {
			if e.Weight != w {
				t.Errorf("edge %s-%s: expected weight %d, got %d", e.A, e.B, w, e.Weight)
			}
			delete(want, key)
		}
	}
	for key := range want {
		t.Errorf("missing edge %s-%s", key[0], key[1])
	}
	for _, e := range edges {
		if e.A == e.B {
			t.Errorf("self edge %s-%s", e.A, e.B)
		}
		if e.A > e.B {
			t.Errorf("edge pair not sorted: %s-%s", e.A, e.B)
		}
	}
}

func TestMentionNetwork_TokenMatch(t *testing.T) {
	participants := []string{"Alice", "Bob Smith"}
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Alice", "ask smith about the keys"),
	}
	edges := MentionNetwork(msgs, participants)
	if len(edges) == 0 {
		t.Fatal("expected a token-level name match to produce an edge")
	}
	if edges[0].A != "Alice" || edges[0].B != "Bob Smith" {
		t.Errorf("unexpected edge: %+v", edges[0])
	}
}

func TestMentionNetwork_ExcludesSystemSenders(t *testing.T) {
	participants := []string{"Alice", "Meta AI", "Bob"}
	msgs := []chatlog.Message{
		msg("1/1/2024", "10:00", "Meta AI", "alice and bob, here are results"),
		msg("1/1/2024", "10:01", "Alice", "thanks bob for asking it"),
	}
	edges := MentionNetwork(msgs, participants)
	for _, e := range edges {
		if e.A == "Meta AI" || e.B == "Meta AI" {
			t.Errorf("system sender appeared in network: %+v", e)
		}
	}
	if len(edges) != 1 {
		t.Fatalf("expected exactly the Alice-Bob edge, got %+v", edges)
	}
}

func TestLooseMatch_Subsequence(t *testing.T) {
	// At least half the name's characters in order counts as a mention.
	if !looseMatch("talked to ali earlier", "Alice") {
		t.Error("expected subsequence match for abbreviated name")
	}
	if looseMatch("zzz", "Alice") {
		t.Error("expected no match for unrelated text")
	}
}
