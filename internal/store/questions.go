package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/snapsolve/internal/question"
)

// QuestionRecord is a solved question persisted in the cache.
type QuestionRecord struct {
	ID        uuid.UUID
	Question  question.Question
	Solution  question.Solution
	CreatedAt time.Time
}

// Match is a cached question returned from a similarity search.
type Match struct {
	Record     QuestionRecord
	Similarity float64
}

// PersistQuestion inserts a solved question with its embedding.
func (s *Store) PersistQuestion(ctx context.Context, rec QuestionRecord, embedding []float64) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	optionsJSON, err := json.Marshal(rec.Question.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        INSERT INTO questions (
            id, question_text, subject, topic, difficulty, options,
            answer, confidence, reasoning, source, model_used, embedding
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::vector)
    `,
		rec.ID,
		rec.Question.Text,
		string(rec.Question.Subject),
		rec.Question.Topic,
		rec.Question.Difficulty,
		optionsJSON,
		rec.Solution.Answer,
		rec.Solution.Confidence,
		rec.Solution.Reasoning,
		string(rec.Solution.Source),
		rec.Solution.ModelUsed,
		VectorLiteral(embedding),
	)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}

	return nil
}

// SearchQuestions finds cached questions similar to the given embedding,
// restricted to the same subject. Results at or above the similarity
// floor are returned in descending similarity order, up to topK.
func (s *Store) SearchQuestions(ctx context.Context, embedding []float64, subject question.Subject, floor float64, topK int) ([]Match, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, question_text, subject, topic, difficulty, options,
               answer, confidence, reasoning, source, model_used, created_at,
               1 - (embedding <=> $1::vector) AS similarity
        FROM questions
        WHERE subject = $2
          AND 1 - (embedding <=> $1::vector) >= $3
        ORDER BY embedding <=> $1::vector
        LIMIT $4
    `, VectorLiteral(embedding), string(subject), floor, topK)
	if err != nil {
		return nil, fmt.Errorf("query similar questions: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			m           Match
			subj        string
			source      string
			optionsJSON []byte
		)

		if err := rows.Scan(
			&m.Record.ID,
			&m.Record.Question.Text,
			&subj,
			&m.Record.Question.Topic,
			&m.Record.Question.Difficulty,
			&optionsJSON,
			&m.Record.Solution.Answer,
			&m.Record.Solution.Confidence,
			&m.Record.Solution.Reasoning,
			&source,
			&m.Record.Solution.ModelUsed,
			&m.Record.CreatedAt,
			&m.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}

		m.Record.Question.Subject = question.Subject(subj)
		m.Record.Solution.Source = question.Source(source)

		if err := json.Unmarshal(optionsJSON, &m.Record.Question.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}

		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question rows: %w", err)
	}

	return matches, nil
}

// CountQuestions returns the total number of cached questions and the
// per-subject breakdown.
func (s *Store) CountQuestions(ctx context.Context) (int64, map[string]int64, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT subject, COUNT(*) FROM questions GROUP BY subject
    `)
	if err != nil {
		return 0, nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	var total int64
	bySubject := make(map[string]int64)
	for rows.Next() {
		var subject string
		var count int64
		if err := rows.Scan(&subject, &count); err != nil {
			return 0, nil, fmt.Errorf("scan count row: %w", err)
		}
		bySubject[subject] = count
		total += count
	}

	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("iterate count rows: %w", err)
	}

	return total, bySubject, nil
}

// VectorLiteral renders an embedding in pgvector's input syntax,
// e.g. "[0.1,0.2,0.3]". Passed as text and cast server-side.
func VectorLiteral(embedding []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}
