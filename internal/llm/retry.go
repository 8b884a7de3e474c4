package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryDecision classifies a provider failure for the retry loop.
type retryDecision int

const (
	// retryNo aborts immediately; the same request would fail the same way.
	retryNo retryDecision = iota

	// retryYes backs off and tries again up to MaxAttempts.
	retryYes

	// retryOnceOnly re-asks a single time. Models that emit malformed
	// JSON once often get it right on the second attempt, but a third
	// ask of an expensive vision or solve call is not worth the tokens.
	retryOnceOnly
)

// RetryProvider retries transient provider failures with exponential
// backoff and jitter before giving up on a question.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with the retry policy.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	reasked := false
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case retryNo:
			return nil, err
		case retryOnceOnly:
			if reasked {
				return nil, err
			}
			reasked = true
		}

		if attempt == r.config.MaxAttempts-1 {
			break
		}
		if err := r.sleep(ctx, attempt, err); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func classify(err error) retryDecision {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNo
	}

	// Re-sending the same request truncates at the same cap.
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return retryNo
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return retryOnceOnly
	}

	// Rate limits, outages and unrecognized network failures.
	return retryYes
}

// sleep waits out the backoff for attempt, aborting if the context ends
// first.
func (r *RetryProvider) sleep(ctx context.Context, attempt int, cause error) error {
	timer := time.NewTimer(r.waitFor(attempt, cause))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// waitFor computes the backoff before the next attempt. A rate-limited
// provider that names its own wait gets exactly that.
func (r *RetryProvider) waitFor(attempt int, cause error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(cause, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))

	// ±20% jitter spreads concurrent batch workers apart.
	wait *= 1 + 0.2*(2*rand.Float64()-1)

	return time.Duration(math.Max(wait, 0))
}
