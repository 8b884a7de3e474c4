package store

import (
	"context"
	"fmt"
)

// QueryLogEntry records one resolved question and how it was answered.
type QueryLogEntry struct {
	QuestionText   string
	Answer         string
	Source         string
	ResponseTimeMs int64
	CacheHit       bool
	ErrorMessage   string
}

// LogQuery appends an entry to the query log.
func (s *Store) LogQuery(ctx context.Context, entry QueryLogEntry) error {
	_, err := s.pool.Exec(ctx, `
        INSERT INTO query_log (question_text, answer, source, response_time_ms, cache_hit, error_message)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, entry.QuestionText, entry.Answer, entry.Source, entry.ResponseTimeMs, entry.CacheHit, entry.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert query log entry: %w", err)
	}
	return nil
}

// Statistics summarizes cache contents and query history.
type Statistics struct {
	TotalQuestions int64            `json:"total_questions"`
	BySubject      map[string]int64 `json:"by_subject"`
	TotalQueries   int64            `json:"total_queries"`
	CacheHits      int64            `json:"cache_hits"`
	CacheHitRate   float64          `json:"cache_hit_rate"`
}

// Statistics computes aggregate counts over the cache and the query log.
func (s *Store) Statistics(ctx context.Context) (*Statistics, error) {
	total, bySubject, err := s.CountQuestions(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalQuestions: total,
		BySubject:      bySubject,
	}

	err = s.pool.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE cache_hit)
        FROM query_log
    `).Scan(&stats.TotalQueries, &stats.CacheHits)
	if err != nil {
		return nil, fmt.Errorf("query log statistics: %w", err)
	}

	if stats.TotalQueries > 0 {
		stats.CacheHitRate = float64(stats.CacheHits) / float64(stats.TotalQueries)
	}

	return stats, nil
}
