package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EmbeddingDim is the dimension of stored question embeddings.
// Must match the embedding model (nomic-embed-text produces 768).
const EmbeddingDim = 768

// Store wraps the Postgres connection pool and provides access to the
// question cache, the query log and the LLM request log.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and verifies the connection.
func New(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Initialize creates the tables and indexes if they don't exist.
// Requires the pgvector extension.
func (s *Store) Initialize(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`)
	if err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS questions (
            id UUID PRIMARY KEY,
            question_text TEXT NOT NULL,
            subject TEXT NOT NULL,
            topic TEXT,
            difficulty TEXT,
            options JSONB NOT NULL,
            answer TEXT NOT NULL,
            confidence INTEGER NOT NULL,
            reasoning TEXT,
            source TEXT NOT NULL,
            model_used TEXT,
            embedding vector(%d) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `, EmbeddingDim))
	if err != nil {
		return fmt.Errorf("create questions table: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        CREATE INDEX IF NOT EXISTS questions_embedding_idx ON questions
        USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)
    `)
	if err != nil {
		return fmt.Errorf("create vector index: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        CREATE INDEX IF NOT EXISTS questions_subject_idx ON questions (subject)
    `)
	if err != nil {
		return fmt.Errorf("create subject index: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS query_log (
            id SERIAL PRIMARY KEY,
            question_text TEXT NOT NULL,
            answer TEXT NOT NULL,
            source TEXT NOT NULL,
            response_time_ms BIGINT NOT NULL,
            cache_hit BOOLEAN NOT NULL DEFAULT false,
            error_message TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	if err != nil {
		return fmt.Errorf("create query_log table: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS llm_requests (
            id SERIAL PRIMARY KEY,
            model TEXT NOT NULL,
            purpose TEXT NOT NULL,
            input_tokens INTEGER NOT NULL,
            output_tokens INTEGER NOT NULL,
            latency_ms BIGINT NOT NULL,
            success BOOLEAN NOT NULL,
            error_message TEXT,
            request_body TEXT,
            response_body TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	if err != nil {
		return fmt.Errorf("create llm_requests table: %w", err)
	}

	return nil
}

// Clear wipes the question cache and the query log, for purging
// answers that turned out to be wrong. The llm_requests audit log and
// the schema itself are kept.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE questions, query_log`); err != nil {
		return fmt.Errorf("clear cache tables: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
