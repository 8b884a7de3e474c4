package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// Provider calls fail in a few recognizable ways, and the pipeline
// reacts differently to each: rate limits and outages are retried,
// schema violations get a single re-ask, and token-limit truncation
// aborts the question so the tier can fail soft.

// ErrRateLimit reports a 429 from the provider. Batch runs over a
// question sheet fire several solve calls in quick succession, so this
// is the most common failure on free-tier keys.
type ErrRateLimit struct {
	// RetryAfter is the provider-suggested wait, zero when absent.
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider rate limit, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("provider rate limit: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse reports model output that failed schema validation
// or could not be decoded. Content preserves the offending output so it
// lands in the llm_requests log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("response failed validation: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable reports a connection failure or a 5xx.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded reports output truncated at the MaxTokens cap.
// Solve responses carry long reasoning chains before the labeled answer
// block, so truncation usually means the cap is too small for the
// question, not a provider fault. Content holds the partial output.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "response truncated at the token limit"
}
