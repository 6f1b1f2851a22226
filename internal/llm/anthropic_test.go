package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 25},
	}
}

func anthropicError(w http.ResponseWriter, status int, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": kind},
	})
}

func TestAnthropicProvider_Tips(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(
			`{"tips":[{"fact":"7 x 8","tip":"5, 6, 7, 8: 56 = 7 x 8"}]}`, "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You coach multiplication facts.",
		Messages:  []Message{{Role: RoleUser, Content: "7 x 8"}},
		Schema:    tipsTestSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.TotalTokens != 65 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("expected stop reason %q, got %q", StopEnd, resp.StopReason)
	}
	if got["model"] != "claude-haiku-4-5-20251001" {
		t.Fatalf("request model = %v", got["model"])
	}
	if _, ok := got["system"]; !ok {
		t.Fatal("expected system prompt in request")
	}
}

func TestAnthropicProvider_MaxTokens(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"tips":[`, "max_tokens"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("", "tips", nil))
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_SchemaMismatch(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"advice":"practice"}`, "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("", "tips", tipsTestSchema()))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_HTTPErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   string
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, "rate_limit_error", IsRateLimit},
		{"server error", http.StatusInternalServerError, "api_error", func(err error) bool {
			var u *ErrProviderUnavailable
			return errors.As(err, &u)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				anthropicError(w, tt.status, tt.kind)
			})
			_, err := p.Generate(context.Background(), UserPrompt("", "test", nil))
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error: %T (%v)", err, err)
			}
		})
	}
}

func TestAnthropicAliases(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-5", "claude-sonnet-4-5"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicAliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"}); err == nil {
		t.Fatal("expected error without API key")
	}
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}
