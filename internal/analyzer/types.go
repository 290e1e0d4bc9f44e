package analyzer

// The AI sections have fixed record shapes, one per section kind, enforced
// at the data-model level rather than inferred downstream.

// Personality is one participant's communication profile.
type Personality struct {
	Name   string   `json:"name"`
	Style  string   `json:"style"`
	Tone   string   `json:"tone"`
	Traits []string `json:"traits"`
}

// RoleHolder is the top scorer for one named group role.
type RoleHolder struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Alignment is a participant's D&D-style moral alignment.
type Alignment struct {
	Name      string `json:"name"`
	Alignment string `json:"alignment"`
	Reason    string `json:"reason"`
}

// Pair is one of the group's closest relationships.
type Pair struct {
	Pair   []string `json:"pair"`
	Bond   string   `json:"bond"`
	Reason string   `json:"reason"`
}

// VocabEntry is a word or phrase unique to the group's dialect.
type VocabEntry struct {
	Word      string `json:"word"`
	Meaning   string `json:"meaning"`
	Frequency string `json:"frequency"`
	MainUser  string `json:"main_user"`
	Example   string `json:"example"`
}

// Topic is a recurring conversation subject.
type Topic struct {
	Topic        string   `json:"topic"`
	Description  string   `json:"description"`
	Participants []string `json:"participants"`
	MessageCount int      `json:"message_count"`
	Vibe         string   `json:"vibe"`
}

// QuizItem is one who-said-this question for the quiz mini-game.
type QuizItem struct {
	Quote         string   `json:"quote"`
	Context       string   `json:"context"`
	CorrectAnswer string   `json:"correct_answer"`
	WrongAnswers  []string `json:"wrong_answers"`
	WhyFunny      string   `json:"why_funny"`
}

// ContextMessage is one surrounding message attached to a dank moment.
type ContextMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"message"`
}

// DankMessage is an AI-selected amusing excerpt with a numeric score.
// ContextChat is filled in by the report assembler, not the model.
type DankMessage struct {
	Category    string           `json:"category"`
	Sender      string           `json:"sender"`
	Message     string           `json:"message"`
	Why         string           `json:"why"`
	DankScore   int              `json:"dank_score"`
	ContextChat []ContextMessage `json:"context_chat"`
}

// Sentiment is the group's overall mood read.
type Sentiment struct {
	Mood   string `json:"mood"`
	Energy string `json:"energy"`
	Vibe   string `json:"vibe"`
}

// CoreResult is the first call's output: who everyone is.
type CoreResult struct {
	Personalities []Personality         `json:"personalities"`
	Roles         map[string]RoleHolder `json:"roles"`
	Alignments    []Alignment           `json:"alignments"`
	Pairs         []Pair                `json:"pairs"`
}

// ContentResult is the second call's output: what the chat contains.
type ContentResult struct {
	Vocabulary      []VocabEntry  `json:"vocabulary"`
	Topics          []Topic       `json:"topics"`
	WhoSaidThis     []QuizItem    `json:"who_said_this"`
	DankestMessages []DankMessage `json:"dankest_messages"`
	Sentiment       Sentiment     `json:"sentiment"`
}

// EmptyCore is the core call's defined empty-result shape, substituted on
// any failure so the pipeline can degrade instead of aborting.
func EmptyCore() CoreResult {
	return CoreResult{
		Personalities: []Personality{},
		Roles:         map[string]RoleHolder{},
		Alignments:    []Alignment{},
		Pairs:         []Pair{},
	}
}

// EmptyContent is the content call's defined empty-result shape.
func EmptyContent() ContentResult {
	return ContentResult{
		Vocabulary:      []VocabEntry{},
		Topics:          []Topic{},
		WhoSaidThis:     []QuizItem{},
		DankestMessages: []DankMessage{},
		Sentiment:       Sentiment{Mood: "unknown", Energy: "unknown", Vibe: "analysis failed"},
	}
}
