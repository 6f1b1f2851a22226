package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns small, cheap models; tips are short.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envBinding maps one FACTZ_* variable onto a config field.
type envBinding struct {
	name string
	dst  *string
}

func (c *Config) bindings() []envBinding {
	return []envBinding{
		{"FACTZ_LLM_PROVIDER", &c.Provider},
		{"FACTZ_ANTHROPIC_API_KEY", &c.Anthropic.APIKey},
		{"FACTZ_ANTHROPIC_MODEL", &c.Anthropic.Model},
		{"FACTZ_OPENAI_API_KEY", &c.OpenAI.APIKey},
		{"FACTZ_OPENAI_MODEL", &c.OpenAI.Model},
		{"FACTZ_OPENAI_BASE_URL", &c.OpenAI.BaseURL},
		{"FACTZ_GEMINI_API_KEY", &c.Gemini.APIKey},
		{"FACTZ_GEMINI_MODEL", &c.Gemini.Model},
		{"FACTZ_OPENROUTER_API_KEY", &c.OpenRouter.APIKey},
		{"FACTZ_OPENROUTER_MODEL", &c.OpenRouter.Model},
	}
}

// ConfigFromEnv applies FACTZ_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, b := range cfg.bindings() {
		if v := os.Getenv(b.name); v != "" {
			*b.dst = v
		}
	}
	return cfg
}

// DiscoverConfig looks for the vendors' standard API key variables
// (Gemini, OpenAI, Anthropic, OpenRouter, in that order) and selects the
// first provider found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "FACTZ_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "FACTZ_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "FACTZ_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "FACTZ_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
