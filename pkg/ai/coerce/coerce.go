package coerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of generation artifacts.
type Kind string

const (
	KindNotes      Kind = "notes"
	KindQuiz       Kind = "quiz"
	KindFlashcards Kind = "flashcards"
	KindSummary    Kind = "summary"
)

// ErrInvalidKind: a kind outside the closed set. Programmer error; the only
// error Coerce can return.
var ErrInvalidKind = errors.New("invalid artifact kind")

type QuizQuestion struct {
	ID            int      `json:"id,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Correct       int      `json:"correct"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Title     string         `json:"title,omitempty"`
	Questions []QuizQuestion `json:"questions"`
}

type Flashcard struct {
	ID    int    `json:"id,omitempty"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type flashcardSet struct {
	Flashcards []Flashcard `json:"flashcards"`
}

// Artifact is the canonical output of a generate operation. Exactly one of
// Quiz, Flashcards or Text is populated depending on Kind. WasFallback marks
// artifacts whose upstream response could not be parsed.
type Artifact struct {
	Kind        Kind
	Quiz        *Quiz
	Flashcards  []Flashcard
	Text        string
	WasFallback bool
}

// Coerce normalizes an arbitrary upstream response into an Artifact matching
// the kind's schema. Malformed input never produces an error: the kind's
// deterministic fallback stub is substituted instead, preserving availability
// over correctness.
func Coerce(kind Kind, raw interface{}) (*Artifact, error) {
	switch kind {
	case KindNotes, KindSummary:
		return coerceText(kind, raw), nil
	case KindQuiz:
		return coerceQuiz(raw), nil
	case KindFlashcards:
		return coerceFlashcards(raw), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}

func coerceText(kind Kind, raw interface{}) *Artifact {
	text, _ := raw.(string)
	if kind == KindNotes {
		text = CleanupNotes(text)
	}
	if strings.TrimSpace(text) == "" {
		return &Artifact{Kind: kind, Text: textFallback, WasFallback: true}
	}
	return &Artifact{Kind: kind, Text: text}
}

func coerceQuiz(raw interface{}) *Artifact {
	payload, ok := structuredPayload(raw)
	if ok {
		var quiz Quiz
		if err := json.Unmarshal(payload, &quiz); err == nil && len(quiz.Questions) > 0 {
			normalizeQuiz(&quiz)
			return &Artifact{Kind: KindQuiz, Quiz: &quiz}
		}
	}
	fallback := quizFallback()
	return &Artifact{Kind: KindQuiz, Quiz: &fallback, WasFallback: true}
}

func coerceFlashcards(raw interface{}) *Artifact {
	payload, ok := structuredPayload(raw)
	if ok {
		var set flashcardSet
		if err := json.Unmarshal(payload, &set); err == nil && len(set.Flashcards) > 0 {
			return &Artifact{Kind: KindFlashcards, Flashcards: set.Flashcards}
		}
		// Some upstreams return the bare array instead of {"flashcards": [...]}
		var cards []Flashcard
		if err := json.Unmarshal(payload, &cards); err == nil && len(cards) > 0 {
			return &Artifact{Kind: KindFlashcards, Flashcards: cards}
		}
	}
	return &Artifact{Kind: KindFlashcards, Flashcards: flashcardsFallback(), WasFallback: true}
}

// structuredPayload reduces raw to a JSON payload: structured values are
// re-marshalled, strings go through the extraction chain (fenced json block,
// then first balanced object/array).
func structuredPayload(raw interface{}) ([]byte, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		extracted := ExtractJSON(v)
		if extracted == "" {
			return nil, false
		}
		return []byte(extracted), true
	case []byte:
		return structuredPayload(string(v))
	case json.RawMessage:
		return v, true
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		return payload, true
	}
}

// ExtractJSON isolates a JSON document from prose. Strategy chain: a fenced
// ```json code block first, then the first balanced {...} or [...] substring.
// Returns "" when neither yields anything.
func ExtractJSON(s string) string {
	if block := fencedBlock(s); block != "" {
		s = block
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}

	if obj := firstBalanced(trimmed, '{', '}'); obj != "" {
		return obj
	}
	return firstBalanced(trimmed, '[', ']')
}

func fencedBlock(s string) string {
	start := strings.Index(s, "```json")
	if start == -1 {
		start = strings.Index(s, "```")
		if start == -1 {
			return ""
		}
	}
	rest := s[start:]
	nl := strings.Index(rest, "\n")
	if nl == -1 {
		return ""
	}
	rest = rest[nl+1:]
	end := strings.Index(rest, "```")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

// firstBalanced scans for the first balanced open..close substring, tracking
// string literals and escapes so braces inside JSON strings don't miscount.
func firstBalanced(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// normalizeQuiz reconciles the two correct-answer conventions seen upstream:
// an option index in "correct", or the option text in "correctAnswer".
func normalizeQuiz(quiz *Quiz) {
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if q.ID == 0 {
			q.ID = i + 1
		}
		if q.CorrectAnswer == "" || q.Correct != 0 {
			continue
		}
		for j, opt := range q.Options {
			if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(q.CorrectAnswer)) {
				q.Correct = j
				break
			}
		}
	}
}

const textFallback = "Sorry, the generated content could not be processed. Please try again."

func quizFallback() Quiz {
	return Quiz{
		Title: "Generated Quiz",
		Questions: []QuizQuestion{
			{
				ID:       1,
				Question: "What is the main topic discussed in the notes?",
				Options: []string{
					"Option A",
					"Option B",
					"Option C",
					"Option D",
				},
				Correct:     0,
				Explanation: "Based on the content analysis",
			},
		},
	}
}

func flashcardsFallback() []Flashcard {
	return []Flashcard{
		{
			ID:    1,
			Front: "Key Concept",
			Back:  "Definition based on the notes",
		},
	}
}
