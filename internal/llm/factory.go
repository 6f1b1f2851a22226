package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by NewProviderFromEnv when no provider
// settings or API keys are present.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProvider builds the provider selected by cfg, wrapped as
// caller → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, sink), cfg.Retry), nil
}

// NewProviderFromEnv uses FACTZ_* settings when a FACTZ provider or key
// is set, and otherwise falls back to DiscoverConfig.
func NewProviderFromEnv(ctx context.Context, sink EventSink) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrNotConfigured, cfg.Validate())
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, sink)
}
