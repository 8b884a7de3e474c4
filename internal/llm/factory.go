package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/snapsolve/internal/store"
)

// ProviderSet holds one configured Provider per pipeline role.
// All providers are wrapped with retry and logging middleware.
type ProviderSet struct {
	// Vision parses question images into structured records.
	Vision Provider

	// Solve answers easy/medium questions.
	Solve Provider

	// Reasoning answers questions classified as hard.
	Reasoning Provider

	// Fast handles the cheap verification call.
	Fast Provider
}

// NewProviderSet creates the per-role providers from configuration.
func NewProviderSet(ctx context.Context, cfg Config, eventRepo store.EventRepo) (*ProviderSet, error) {
	roles := cfg.roleModels()

	vision, err := newProvider(ctx, cfg, roles.Vision, eventRepo)
	if err != nil {
		return nil, err
	}
	solve, err := newProvider(ctx, cfg, roles.Solve, eventRepo)
	if err != nil {
		return nil, err
	}
	reasoning, err := newProvider(ctx, cfg, roles.Reasoning, eventRepo)
	if err != nil {
		return nil, err
	}
	fast, err := newProvider(ctx, cfg, roles.Fast, eventRepo)
	if err != nil {
		return nil, err
	}

	return &ProviderSet{
		Vision:    vision,
		Solve:     solve,
		Reasoning: reasoning,
		Fast:      fast,
	}, nil
}

// newProvider creates a single Provider for the given model,
// wrapped with middleware: caller → retry → logging → base.
func newProvider(ctx context.Context, cfg Config, model string, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "groq":
		base, err = NewGroqProvider(cfg.Groq, model)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI, model)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic, model)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini, model)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}
