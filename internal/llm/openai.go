package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider uses Chat Completions. Setting OpenAIConfig.BaseURL
// points it at OpenRouter or any other compatible endpoint.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(conf), model: cfg.Model}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}

	out, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, classifySDK(err, func(e *openai.APIError) int { return e.HTTPStatusCode })
	}
	if len(out.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("OpenAI returned no choices")}
	}

	first := out.Choices[0]
	return finish(req,
		json.RawMessage(first.Message.Content),
		first.FinishReason == openai.FinishReasonLength,
		out.Model,
		newUsage(out.Usage.PromptTokens, out.Usage.CompletionTokens))
}

func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            msgs,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema == nil {
		return chatReq, nil
	}

	schema, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return chatReq, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
	}
	chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   req.Schema.Name,
			Schema: json.RawMessage(schema),
			Strict: true,
		},
	}
	return chatReq, nil
}
