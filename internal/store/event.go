package store

import (
	"context"
	"fmt"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// Events returns an EventRepo backed by the llm_requests table.
func (s *Store) Events() EventRepo {
	return &eventRepo{store: s}
}

type eventRepo struct {
	store *Store
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.store.pool.Exec(ctx, `
        INSERT INTO llm_requests (
            model, purpose, input_tokens, output_tokens,
            latency_ms, success, error_message, request_body, response_body
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
		data.RequestBody,
		data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// NoopEvents returns an EventRepo that discards all events.
// Used when running without a database.
func NoopEvents() EventRepo {
	return noopEventRepo{}
}

type noopEventRepo struct{}

func (noopEventRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error {
	return nil
}
