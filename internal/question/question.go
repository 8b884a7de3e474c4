package question

import (
	"fmt"
	"strings"
)

// Letter identifies one of the four multiple-choice options.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters lists the option letters in display order.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD}

// IsLetter reports whether s is a valid option letter.
func IsLetter(s string) bool {
	switch Letter(strings.ToUpper(strings.TrimSpace(s))) {
	case LetterA, LetterB, LetterC, LetterD:
		return true
	}
	return false
}

// Subject classifies a question into one of the supported STEM areas.
type Subject string

const (
	SubjectMath      Subject = "math"
	SubjectPhysics   Subject = "physics"
	SubjectChemistry Subject = "chemistry"
)

// Subjects lists all supported subjects.
var Subjects = []Subject{SubjectMath, SubjectPhysics, SubjectChemistry}

// NormalizeSubject coerces an arbitrary subject string to a supported
// Subject. Unrecognized values fall back to math, matching the vision
// model's most common output domain.
func NormalizeSubject(s string) Subject {
	switch Subject(strings.ToLower(strings.TrimSpace(s))) {
	case SubjectPhysics:
		return SubjectPhysics
	case SubjectChemistry:
		return SubjectChemistry
	default:
		return SubjectMath
	}
}

// Question is a single multiple-choice item extracted from an image.
// Questions are immutable after extraction; tiers read them and attach
// a Solution, they never modify them.
type Question struct {
	// Number is the ordinal label printed on the source image ("27").
	// Scoped to one image, not globally unique. May be empty.
	Number string `json:"question_number,omitempty"`

	// Subject is the classified subject area.
	Subject Subject `json:"subject"`

	// Topic is a free-text classification hint ("thermodynamics").
	Topic string `json:"topic,omitempty"`

	// Difficulty is the vision model's assessment: easy, medium or hard.
	Difficulty string `json:"difficulty,omitempty"`

	// Text is the normalized question statement. Required.
	Text string `json:"question_text"`

	// Equations holds LaTeX equation strings in source order. May be empty.
	Equations []string `json:"equations,omitempty"`

	// Options maps each letter A-D to its option text.
	// A valid question has exactly these four keys.
	Options map[Letter]string `json:"options"`

	// Keywords are free-text tokens used only when building the
	// embedding text for cache storage.
	Keywords []string `json:"keywords,omitempty"`
}

// Validate checks the invariants the orchestrator depends on:
// non-empty question text and a complete A-D options mapping.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != len(Letters) {
		return fmt.Errorf("expected %d options, got %d", len(Letters), len(q.Options))
	}
	for _, l := range Letters {
		if strings.TrimSpace(q.Options[l]) == "" {
			return fmt.Errorf("option %s is missing or empty", l)
		}
	}
	return nil
}

// EmbeddingText builds the composite text used for similarity search:
// the question text followed by the joined equations.
func (q *Question) EmbeddingText() string {
	if len(q.Equations) == 0 {
		return q.Text
	}
	return q.Text + " " + strings.Join(q.Equations, " ")
}

// Source tags which resolution tier produced a Solution.
type Source string

const (
	// SourceCache marks an answer served from the similarity cache.
	SourceCache Source = "database_cache"

	// SourceWeb marks an answer extracted from public web content.
	SourceWeb Source = "web_search"

	// SourceSolved marks an answer computed by the LLM solve tier.
	SourceSolved Source = "groq_solved"

	// SourceSolvedUncertain marks a solve-tier answer where no letter
	// could be parsed and the fail-soft default was applied.
	SourceSolvedUncertain Source = "groq_solved_uncertain"

	// SourceError marks a placeholder solution for a failed question.
	SourceError Source = "error"
)

// Solution is the resolved answer to one Question.
type Solution struct {
	// Answer is one of A-D on success, or "ERROR" for failed placeholders.
	Answer string `json:"answer"`

	// Confidence is the resolving tier's certainty in [0, 100].
	Confidence int `json:"confidence"`

	// Reasoning is free text: raw model output, a web snippet, or the
	// cached reasoning for cache hits.
	Reasoning string `json:"reasoning,omitempty"`

	// Source identifies the tier that resolved the question.
	Source Source `json:"source"`

	// ModelUsed identifies the inference model, set only by the solve tier.
	ModelUsed string `json:"model_used,omitempty"`
}

// ClampConfidence pins c to the valid [0, 100] range.
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
