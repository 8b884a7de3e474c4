package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "groq", "openai", "anthropic", "gemini", "mock"
	Provider string

	Groq      GroqConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Models selects which model serves each pipeline role.
	// Empty fields fall back to the active provider's defaults.
	Models ModelRoles

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// ModelRoles names the model used for each stage of the pipeline.
// Values are friendly names or raw model IDs.
type ModelRoles struct {
	// Vision parses question images into structured records.
	Vision string

	// Solve answers questions of easy/medium difficulty.
	Solve string

	// Reasoning answers questions classified as hard.
	Reasoning string

	// Fast handles the cheap CORRECT/INCORRECT verification call.
	Fast string
}

// GroqConfig holds Groq-specific configuration.
// Groq exposes an OpenAI-compatible API.
type GroqConfig struct {
	APIKey  string
	BaseURL string // Default: "https://api.groq.com/openai/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// defaultRoles maps each provider to its default model per role.
var defaultRoles = map[string]ModelRoles{
	"groq": {
		Vision:    "llama-3.2-90b-vision-preview",
		Solve:     "llama-3.1-70b-versatile",
		Reasoning: "llama-3.3-70b-versatile",
		Fast:      "llama-3.1-8b-instant",
	},
	"openai": {
		Vision:    "gpt-4o",
		Solve:     "gpt-4o-mini",
		Reasoning: "gpt-4o",
		Fast:      "gpt-4o-mini",
	},
	"anthropic": {
		Vision:    "claude-sonnet",
		Solve:     "claude-haiku",
		Reasoning: "claude-sonnet",
		Fast:      "claude-haiku",
	},
	"gemini": {
		Vision:    "gemini-flash",
		Solve:     "gemini-flash",
		Reasoning: "gemini-pro",
		Fast:      "gemini-flash",
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Groq: GroqConfig{
			BaseURL: defaultGroqBaseURL,
		},
		// Batch runs fire several solve calls back to back, so the
		// backoff starts high enough to outlast a per-minute rate
		// window instead of burning attempts inside it.
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 2 * time.Second,
			MaxWait:     30 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("SNAPSOLVE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("SNAPSOLVE_GROQ_API_KEY"); k != "" {
		cfg.Groq.APIKey = k
	}
	if u := os.Getenv("SNAPSOLVE_GROQ_BASE_URL"); u != "" {
		cfg.Groq.BaseURL = u
	}

	if k := os.Getenv("SNAPSOLVE_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if u := os.Getenv("SNAPSOLVE_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("SNAPSOLVE_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if k := os.Getenv("SNAPSOLVE_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}

	if m := os.Getenv("SNAPSOLVE_VISION_MODEL"); m != "" {
		cfg.Models.Vision = m
	}
	if m := os.Getenv("SNAPSOLVE_SOLVE_MODEL"); m != "" {
		cfg.Models.Solve = m
	}
	if m := os.Getenv("SNAPSOLVE_REASONING_MODEL"); m != "" {
		cfg.Models.Reasoning = m
	}
	if m := os.Getenv("SNAPSOLVE_FAST_MODEL"); m != "" {
		cfg.Models.Fast = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Groq → Gemini → OpenAI → Anthropic) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Provider = "groq"
		cfg.Groq.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// roleModels resolves the per-role model names for the active provider,
// applying explicit overrides over provider defaults.
func (c Config) roleModels() ModelRoles {
	roles := defaultRoles[c.Provider]
	if c.Models.Vision != "" {
		roles.Vision = c.Models.Vision
	}
	if c.Models.Solve != "" {
		roles.Solve = c.Models.Solve
	}
	if c.Models.Reasoning != "" {
		roles.Reasoning = c.Models.Reasoning
	}
	if c.Models.Fast != "" {
		roles.Fast = c.Models.Fast
	}
	return roles
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("SNAPSOLVE_GROQ_API_KEY is required for the groq provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("SNAPSOLVE_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("SNAPSOLVE_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("SNAPSOLVE_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
