package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider returns an OpenAIProvider pointed at OpenRouter's
// OpenAI-compatible endpoint.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return NewOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: baseURL})
}
