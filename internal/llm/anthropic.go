package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Short model names accepted in config.
var anthropicAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicProvider uses the Messages API. Structured output goes through
// the JSON output format.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &AnthropicProvider{client: &client, model: resolveModel(cfg.Model, anthropicAliases)}, nil
}

func (p *AnthropicProvider) ModelID() string { return p.model }

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	msg, err := p.client.Messages.New(ctx, p.params(req))
	if err != nil {
		return nil, classifySDK(err, func(e *anthropic.Error) int { return e.StatusCode })
	}

	var text json.RawMessage
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = json.RawMessage(block.Text)
			break
		}
	}
	if text == nil {
		return nil, &ErrInvalidResponse{Err: errors.New("Anthropic response has no text block")}
	}

	return finish(req, text,
		msg.StopReason == "max_tokens",
		string(msg.Model),
		newUsage(int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)))
}

func (p *AnthropicProvider) params(req Request) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
	}
	for _, m := range req.Messages {
		role := anthropic.MessageParamRoleUser
		if m.Role == RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		params.Messages = append(params.Messages, anthropic.MessageParam{
			Role:    role,
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(m.Content)},
		})
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}
	return params
}

// resolveModel expands an alias. Unknown names pass through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
