package llm

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != "groq" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "groq")
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.InitialWait != 2*time.Second || cfg.Retry.MaxWait != 30*time.Second {
		t.Errorf("Retry waits = %v/%v, want 2s/30s", cfg.Retry.InitialWait, cfg.Retry.MaxWait)
	}
	if cfg.Groq.BaseURL != defaultGroqBaseURL {
		t.Errorf("Groq.BaseURL = %q, want %q", cfg.Groq.BaseURL, defaultGroqBaseURL)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SNAPSOLVE_LLM_PROVIDER", "openai")
	t.Setenv("SNAPSOLVE_OPENAI_API_KEY", "sk-test")
	t.Setenv("SNAPSOLVE_SOLVE_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "openai")
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("OpenAI.APIKey = %q, want %q", cfg.OpenAI.APIKey, "sk-test")
	}
	if cfg.Models.Solve != "gpt-4o" {
		t.Errorf("Models.Solve = %q, want %q", cfg.Models.Solve, "gpt-4o")
	}
}

func TestRoleModelsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	roles := cfg.roleModels()

	if roles.Vision != "llama-3.2-90b-vision-preview" {
		t.Errorf("Vision = %q, want groq vision default", roles.Vision)
	}
	if roles.Fast != "llama-3.1-8b-instant" {
		t.Errorf("Fast = %q, want groq fast default", roles.Fast)
	}
}

func TestRoleModelsOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Models.Reasoning = "custom-model"

	roles := cfg.roleModels()

	if roles.Reasoning != "custom-model" {
		t.Errorf("Reasoning = %q, want %q", roles.Reasoning, "custom-model")
	}
	// Other roles keep provider defaults.
	if roles.Solve != "llama-3.1-70b-versatile" {
		t.Errorf("Solve = %q, want groq solve default", roles.Solve)
	}
}

func TestValidateMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for missing API key")
	}
}

func TestValidateMockNeedsNoKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "bogus"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for unknown provider")
	}
}

func TestDiscoverConfig(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig() ok = false, want true")
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "gemini")
	}
	if cfg.Gemini.APIKey != "g-key" {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Gemini.APIKey, "g-key")
	}
}
