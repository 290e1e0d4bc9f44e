package analyzer

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chatreveal/chatscope/internal/chatlog"
	"github.com/chatreveal/chatscope/internal/groq"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func newTestAnalyzer(t *testing.T, reply string, status int) *Analyzer {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		body := `{"choices":[{"message":{"content":` + jsonString(reply) + `}}]}`
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	pool, err := groq.NewKeyPool([]string{"test"})
	if err != nil {
		t.Fatalf("key pool: %v", err)
	}
	llm := groq.NewClient(pool, "test-model", server.URL, testLogger())
	return New(llm, testLogger())
}

func jsonString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

var sampleMsgs = []chatlog.Message{
	{Sender: "Alice", Text: "hello there"},
	{Sender: "Bob", Text: "hey hey"},
}

func TestCoreAnalysis_ValidReply(t *testing.T) {
	reply := `{"personalities":[{"name":"Alice","style":"direct","tone":"warm","traits":["funny"]}],` +
		`"roles":{"The Comedian":{"name":"Bob","score":9,"reason":"jokes"}},` +
		`"alignments":[{"name":"Alice","alignment":"Chaotic Good","reason":"spontaneous"}],` +
		`"pairs":[{"pair":["Alice","Bob"],"bond":"banter","reason":"constant replies"}]}`

	a := newTestAnalyzer(t, reply, http.StatusOK)
	got := a.CoreAnalysis(context.Background(), []string{"Alice", "Bob"}, sampleMsgs)

	if len(got.Personalities) != 1 || got.Personalities[0].Name != "Alice" {
		t.Errorf("unexpected personalities: %+v", got.Personalities)
	}
	if got.Roles["The Comedian"].Name != "Bob" {
		t.Errorf("unexpected roles: %+v", got.Roles)
	}
	if len(got.Alignments) != 1 || got.Alignments[0].Alignment != "Chaotic Good" {
		t.Errorf("unexpected alignments: %+v", got.Alignments)
	}
	if len(got.Pairs) != 1 {
		t.Errorf("unexpected pairs: %+v", got.Pairs)
	}
}

func TestCoreAnalysis_FencedReply(t *testing.T) {
	reply := "```json\n{\"personalities\":[],\"roles\":{},\"alignments\":[],\"pairs\":[]}\n```"
	a := newTestAnalyzer(t, reply, http.StatusOK)
	got := a.CoreAnalysis(context.Background(), []string{"Alice"}, sampleMsgs)
	if got.Personalities == nil || got.Roles == nil {
		t.Error("expected fenced JSON to parse into non-nil sections")
	}
}

func TestCoreAnalysis_MalformedReplyDegrades(t *testing.T) {
	a := newTestAnalyzer(t, "I'd rather write prose about these people.", http.StatusOK)
	got := a.CoreAnalysis(context.Background(), []string{"Alice"}, sampleMsgs)

	want := EmptyCore()
	if len(got.Personalities) != 0 || len(got.Roles) != 0 || len(got.Alignments) != 0 || len(got.Pairs) != 0 {
		t.Errorf("expected empty core shape, got %+v", got)
	}
	if got.Personalities == nil || got.Roles == nil {
		t.Errorf("expected non-nil empty sections like %+v", want)
	}
}

func TestCoreAnalysis_PartialReplyFilled(t *testing.T) {
	a := newTestAnalyzer(t, `{"personalities":[{"name":"Alice"}]}`, http.StatusOK)
	got := a.CoreAnalysis(context.Background(), []string{"Alice"}, sampleMsgs)
	if got.Roles == nil || got.Alignments == nil || got.Pairs == nil {
		t.Error("expected missing sections to be filled with empty values")
	}
	if len(got.Personalities) != 1 {
		t.Errorf("expected the provided section to survive, got %+v", got.Personalities)
	}
}

func TestContentAnalysis_ValidReply(t *testing.T) {
	reply := `{"vocabulary":[{"word":"bruh","meaning":"disbelief","frequency":"high","main_user":"Bob","example":"bruh moment"}],` +
		`"topics":[{"topic":"food","description":"where to eat","participants":["Alice","Bob"],"message_count":40,"vibe":"hungry"}],` +
		`"who_said_this":[{"quote":"never again after last time","context":"the trip","correct_answer":"Alice","wrong_answers":["Bob"],"why_funny":"dramatic"}],` +
		`"dankest_messages":[{"category":"chaos","sender":"Bob","message":"I ate the whole thing","why":"commitment","dank_score":9}],` +
		`"sentiment":{"mood":"playful","energy":"high","vibe":"chaotic good"}}`

	a := newTestAnalyzer(t, reply, http.StatusOK)
	got := a.ContentAnalysis(context.Background(), []string{"Alice", "Bob"}, sampleMsgs)

	if len(got.Vocabulary) != 1 || got.Vocabulary[0].Word != "bruh" {
		t.Errorf("unexpected vocabulary: %+v", got.Vocabulary)
	}
	if len(got.Topics) != 1 || got.Topics[0].MessageCount != 40 {
		t.Errorf("unexpected topics: %+v", got.Topics)
	}
	if len(got.DankestMessages) != 1 || got.DankestMessages[0].DankScore != 9 {
		t.Errorf("unexpected dankest: %+v", got.DankestMessages)
	}
	if got.Sentiment.Mood != "playful" {
		t.Errorf("unexpected sentiment: %+v", got.Sentiment)
	}
}

func TestContentAnalysis_MissingSentimentNormalized(t *testing.T) {
	a := newTestAnalyzer(t, `{"vocabulary":[],"topics":[],"who_said_this":[],"dankest_messages":[]}`, http.StatusOK)
	got := a.ContentAnalysis(context.Background(), []string{"Alice"}, sampleMsgs)

	if got.Sentiment.Mood != "unknown" || got.Sentiment.Energy != "unknown" || got.Sentiment.Vibe != "unknown" {
		t.Errorf("expected unknown sentiment when the reply omits it, got %+v", got.Sentiment)
	}
}

func TestContentAnalysis_CallFailureDegrades(t *testing.T) {
	a := newTestAnalyzer(t, "", http.StatusBadRequest)
	got := a.ContentAnalysis(context.Background(), []string{"Alice"}, sampleMsgs)

	if got.Sentiment.Mood != "unknown" || got.Sentiment.Vibe != "analysis failed" {
		t.Errorf("expected failure sentiment, got %+v", got.Sentiment)
	}
	if got.Vocabulary == nil || got.Topics == nil || got.WhoSaidThis == nil || got.DankestMessages == nil {
		t.Error("expected non-nil empty sections after failure")
	}
	if len(got.Vocabulary) != 0 {
		t.Errorf("expected no vocabulary, got %+v", got.Vocabulary)
	}
}

func TestAnalysisCalls_RespectContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	pool, _ := groq.NewKeyPool([]string{"test"})
	llm := groq.NewClient(pool, "test-model", server.URL, testLogger())
	a := New(llm, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	got := a.CoreAnalysis(ctx, []string{"Alice"}, sampleMsgs)
	if len(got.Personalities) != 0 {
		t.Errorf("expected degraded result on context cancellation, got %+v", got)
	}
}
