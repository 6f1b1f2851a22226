// Package llm is a small provider-neutral client for structured JSON
// generation. Providers are wrapped with retry and event logging by
// NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a request.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set, Content is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is a single-turn or multi-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means free text, returned
	// as a JSON string.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a request with one user message.
func UserPrompt(system, prompt string, schema *Schema) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
		Schema:   schema,
	}
}

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "memory-tips". Providers use it as the
	// schema or tool name.
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopError     = "error"
)

// Response holds the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Decode unmarshals the response content into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Content, v)
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// finish applies the rules shared by every provider to raw output:
// truncated output is an error, and schema requests must validate.
func finish(req Request, content json.RawMessage, truncated bool, model string, usage Usage) (*Response, error) {
	if truncated {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: StopEnd}, nil
}
