// Package extract turns question-sheet images into structured questions
// using a vision model. The model output is requested as JSON but not
// trusted: every decoded record is validated and invalid ones dropped.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/snapsolve/internal/llm"
	"github.com/abhisek/snapsolve/internal/question"
)

// ErrNoQuestions indicates the image produced no valid questions after
// all extraction attempts.
var ErrNoQuestions = errors.New("no questions found in image")

// Image is a raw question-sheet photo.
type Image struct {
	Data []byte
	MIME string
}

// DetectMIME sniffs JPEG or PNG by magic bytes. Returns "" for
// anything else.
func DetectMIME(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	return ""
}

// Extractor parses question images via a vision-capable Provider.
type Extractor struct {
	vision llm.Provider
}

// New creates an Extractor backed by the given vision provider.
func New(vision llm.Provider) *Extractor {
	return &Extractor{vision: vision}
}

// ExtractAll parses every question visible in the image. Invalid records
// are dropped silently; if the whole response fails to decode, a
// single-question re-extraction is attempted before giving up.
// Returns ErrNoQuestions when nothing valid could be recovered.
func (e *Extractor) ExtractAll(ctx context.Context, img Image) ([]question.Question, error) {
	ctx = llm.WithPurpose(ctx, "parse-image")

	resp, err := e.vision.Generate(ctx, llm.Request{
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: multiQuestionPrompt,
			Images:  []llm.Image{{Data: img.Data, MIME: img.MIME}},
		}},
		MaxTokens:   8000,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("vision request: %w", err)
	}

	records, decodeErr := decodeRecords(resp.Text())
	if decodeErr != nil {
		// Malformed output for the batch prompt; a simpler single-question
		// prompt often still succeeds.
		q, err := e.ExtractOne(ctx, img)
		if err != nil {
			return nil, ErrNoQuestions
		}
		return []question.Question{q}, nil
	}

	questions := validRecords(records)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// ExtractOne parses only the first visible question in the image.
func (e *Extractor) ExtractOne(ctx context.Context, img Image) (question.Question, error) {
	ctx = llm.WithPurpose(ctx, "parse-image")

	resp, err := e.vision.Generate(ctx, llm.Request{
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: singleQuestionPrompt,
			Images:  []llm.Image{{Data: img.Data, MIME: img.MIME}},
		}},
		MaxTokens:   2000,
		Temperature: 0.1,
	})
	if err != nil {
		return question.Question{}, fmt.Errorf("vision request: %w", err)
	}

	raw := json.RawMessage(stripCodeFences(resp.Text()))
	q, err := decodeRecord(raw)
	if err != nil {
		return question.Question{}, ErrNoQuestions
	}
	return q, nil
}

// decodeRecords decodes the model output into raw question records.
// A single JSON object is wrapped into a one-element list.
func decodeRecords(text string) ([]json.RawMessage, error) {
	cleaned := stripCodeFences(text)

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &records); err == nil {
		return records, nil
	}

	var single map[string]any
	if err := json.Unmarshal([]byte(cleaned), &single); err != nil {
		return nil, fmt.Errorf("response is neither a JSON array nor an object")
	}
	return []json.RawMessage{json.RawMessage(cleaned)}, nil
}

// validRecords decodes and validates each record, dropping invalid ones.
func validRecords(records []json.RawMessage) []question.Question {
	var questions []question.Question
	for _, raw := range records {
		q, err := decodeRecord(raw)
		if err != nil {
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

// decodeRecord validates one raw record against the question schema,
// decodes it and normalizes the subject.
func decodeRecord(raw json.RawMessage) (question.Question, error) {
	if err := llm.ValidateContent(questionSchema, raw); err != nil {
		return question.Question{}, err
	}

	var q question.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return question.Question{}, fmt.Errorf("decode question: %w", err)
	}

	q.Subject = question.NormalizeSubject(string(q.Subject))

	if err := q.Validate(); err != nil {
		return question.Question{}, err
	}
	return q, nil
}

// stripCodeFences removes a surrounding markdown code fence, which
// vision models add despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
