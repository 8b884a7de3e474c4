// Package answer extracts a structured answer from free-form solver output.
//
// Model output is expected to end with labeled ANSWER / CONFIDENCE fields,
// but in practice answers show up in many phrasings or only as a bare
// letter near the end. Extraction runs an ordered cascade of strategies
// and never fails: when nothing matches, a low-confidence sentinel result
// is returned so batch jobs always complete.
package answer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/snapsolve/internal/question"
)

// Config holds the extraction policy constants. The defaults bias an
// unparseable answer toward a fixed letter, so callers that care should
// override them deliberately rather than rely on the bias.
type Config struct {
	// DefaultLetter is the answer reported when no strategy matches.
	DefaultLetter string

	// UncertainConfidence is the confidence of the fail-soft sentinel.
	UncertainConfidence int

	// DefaultConfidence is used when the text has an answer but no
	// CONFIDENCE field. The solve tier passes 85 for the multi-question
	// path and 70 for the single-question path.
	DefaultConfidence int

	// TailWindow is how many trailing characters the last-resort
	// free-standing-letter scan inspects.
	TailWindow int
}

// DefaultConfig returns the extraction policy of the original pipeline.
func DefaultConfig() Config {
	return Config{
		DefaultLetter:       "A",
		UncertainConfidence: 50,
		DefaultConfidence:   85,
		TailWindow:          500,
	}
}

// Extraction is the structured result of parsing solver output.
type Extraction struct {
	// Answer is always one of A-D.
	Answer string

	// Confidence is the parsed or defaulted confidence in [0, 100].
	Confidence int

	// Reasoning is the full input text, preserved for storage.
	Reasoning string

	// Uncertain is true when the fail-soft sentinel was applied.
	Uncertain bool

	// Strategy names the cascade entry that matched, for diagnostics.
	Strategy string
}

// strategy is one entry in the extraction cascade: a compiled pattern
// whose first capture group is the answer letter.
type strategy struct {
	name string
	re   *regexp.Regexp
}

// labeled is the primary strategy: an explicit ANSWER field.
var labeled = strategy{"labeled-field", regexp.MustCompile(`(?i)ANSWER:\s*([A-D])\b`)}

// phrasings are the fallback strategies, in priority order. First match
// wins; add new phrasings here rather than branching in Extract.
var phrasings = []strategy{
	{"answer-is", regexp.MustCompile(`(?i)answer\s+is\s+([A-D])\b`)},
	{"correct-answer", regexp.MustCompile(`(?i)correct\s+answer:\s*([A-D])\b`)},
	{"option-is-correct", regexp.MustCompile(`(?i)option\s+([A-D])\s+is\s+correct`)},
	{"the-answer-is", regexp.MustCompile(`(?i)the\s+answer\s+is\s+([A-D])\b`)},
	{"answer-option", regexp.MustCompile(`(?i)answer:\s*option\s+([A-D])\b`)},
	{"paren-is-correct", regexp.MustCompile(`(?i)\(([A-D])\)\s+is\s+correct`)},
	{"select", regexp.MustCompile(`(?i)select\s+([A-D])\b`)},
	{"choose", regexp.MustCompile(`(?i)choose\s+([A-D])\b`)},
	{"is-the-correct", regexp.MustCompile(`(?i)\b([A-D])\s+is\s+the\s+correct`)},
	{"final-answer", regexp.MustCompile(`(?i)final\s+answer:\s*([A-D])\b`)},
}

var (
	confidenceRe = regexp.MustCompile(`CONFIDENCE:\s*(\d+)`)
	bareLetterRe = regexp.MustCompile(`\b([A-D])\b`)
)

// Extract parses solver output into a structured answer. It is a pure
// function of its input and never returns an error: the cascade bottoms
// out at the fail-soft sentinel.
func Extract(text string, cfg Config) Extraction {
	out := Extraction{
		Reasoning:  text,
		Confidence: extractConfidence(text, cfg.DefaultConfidence),
	}

	if m := labeled.re.FindStringSubmatch(text); m != nil {
		out.Answer = strings.ToUpper(m[1])
		out.Strategy = labeled.name
		return out
	}

	for _, s := range phrasings {
		if m := s.re.FindStringSubmatch(text); m != nil {
			out.Answer = strings.ToUpper(m[1])
			out.Strategy = s.name
			return out
		}
	}

	if letter, ok := lastFreeLetter(text, cfg.TailWindow); ok {
		out.Answer = letter
		out.Strategy = "trailing-letter"
		return out
	}

	out.Answer = cfg.DefaultLetter
	out.Confidence = cfg.UncertainConfidence
	out.Uncertain = true
	out.Strategy = "fail-soft"
	return out
}

// ExtractFromSnippet runs only the explicit strategies against short
// text such as a search-result snippet. The trailing-letter heuristic is
// skipped: on arbitrary web text a bare letter is noise, not an answer.
// Returns ("", false) when nothing matches.
func ExtractFromSnippet(text string) (string, bool) {
	letter, _, _, ok := FindMatch(text)
	return letter, ok
}

// FindMatch runs the explicit strategies and also reports the byte
// offsets of the match, so callers can pull surrounding context out of
// longer documents.
func FindMatch(text string) (letter string, start, end int, ok bool) {
	if loc := labeled.re.FindStringSubmatchIndex(text); loc != nil {
		return strings.ToUpper(text[loc[2]:loc[3]]), loc[0], loc[1], true
	}
	for _, s := range phrasings {
		if loc := s.re.FindStringSubmatchIndex(text); loc != nil {
			return strings.ToUpper(text[loc[2]:loc[3]]), loc[0], loc[1], true
		}
	}
	return "", 0, 0, false
}

// lastFreeLetter scans the final window characters for the last
// free-standing option letter. Recovers answers stated only at the very
// end of the reasoning without any label.
func lastFreeLetter(text string, window int) (string, bool) {
	if len(text) > window {
		text = text[len(text)-window:]
	}
	matches := bareLetterRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.ToUpper(matches[len(matches)-1][1]), true
}

// extractConfidence parses a labeled CONFIDENCE field, clamped to
// [0, 100], falling back to def when absent or malformed.
func extractConfidence(text string, def int) int {
	m := confidenceRe.FindStringSubmatch(text)
	if m == nil {
		return question.ClampConfidence(def)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return question.ClampConfidence(def)
	}
	return question.ClampConfidence(n)
}
