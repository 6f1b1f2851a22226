package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// GeminiProvider talks to the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a provider for cfg.Model.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiAliases)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Content}}})
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, classifySDK(err, func(e *genai.APIError) int { return e.Code })
	}

	var usage Usage
	if u := result.UsageMetadata; u != nil {
		usage = newUsage(int(u.PromptTokenCount), int(u.CandidatesTokenCount))
	}
	truncated := len(result.Candidates) > 0 && result.Candidates[0].FinishReason == "MAX_TOKENS"
	return finish(req, json.RawMessage(result.Text()), truncated, p.model, usage)
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// geminiSchema converts the JSON Schema subset used by factz into a
// genai.Schema.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeString}
	if t, ok := def["type"].(string); ok {
		switch t {
		case "number":
			s.Type = genai.TypeNumber
		case "integer":
			s.Type = genai.TypeInteger
		case "boolean":
			s.Type = genai.TypeBoolean
		case "array":
			s.Type = genai.TypeArray
		case "object":
			s.Type = genai.TypeObject
		}
	}
	if d, ok := def["description"].(string); ok {
		s.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				s.Properties[name] = geminiSchema(sub)
			}
		}
	}
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	return s
}

// stringList accepts []string or []any holding strings.
func stringList(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		var out []string
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
