// Package coach asks an LLM for short memory tips on facts a learner
// missed. It is optional: a Service without a provider does nothing.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/factz/internal/llm"
	"github.com/abhisek/factz/internal/selector"
)

// ErrDisabled is returned by Tips when no provider is configured.
var ErrDisabled = errors.New("memory tips are disabled")

// Config holds tip generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxFacts caps how many missed facts go into one request.
	MaxFacts int
}

func DefaultConfig() Config {
	return Config{MaxTokens: 400, Temperature: 0.6, MaxFacts: 5}
}

// Tip is a memory aid for one fact.
type Tip struct {
	Fact string `json:"fact"`
	Tip  string `json:"tip"`
}

// TipsSchema constrains the model to a list of fact/tip pairs.
var TipsSchema = &llm.Schema{
	Name:        "memory-tips",
	Description: "One short memory tip per multiplication fact",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tips": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"fact": map[string]any{"type": "string", "description": "The fact, e.g. 7 x 8"},
						"tip":  map[string]any{"type": "string", "description": "One sentence memory aid"},
					},
					"required":             []any{"fact", "tip"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tips"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You help children memorize multiplication facts. For each fact, give one short, friendly memory trick (a pattern, a rhyme, or a nearby easier fact). Use plain ASCII. Never just restate the answer.`

// Service generates tips in the background. Only one request is
// tracked at a time; a new request replaces whatever is pending.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu    sync.Mutex
	gen   int
	tips  []Tip
	ready bool
}

// NewService returns a Service. A nil provider disables tips.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether tips can be requested.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// RequestTips starts tip generation for facts. Failures are logged and
// produce no tips.
func (s *Service) RequestTips(ctx context.Context, facts []selector.Question) {
	if !s.Enabled() || len(facts) == 0 {
		return
	}
	facts = s.capFacts(facts)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.tips, s.ready = nil, false
	s.mu.Unlock()

	go func() {
		tips, err := s.generate(ctx, facts)
		if err != nil {
			log.Warn().Err(err).Int("facts", len(facts)).Msg("memory tips unavailable")
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.tips = tips
		s.ready = true
	}()
}

// Tips generates tips for facts and waits for the result.
func (s *Service) Tips(ctx context.Context, facts []selector.Question) ([]Tip, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if len(facts) == 0 {
		return nil, nil
	}
	return s.generate(ctx, s.capFacts(facts))
}

func (s *Service) capFacts(facts []selector.Question) []selector.Question {
	if s.cfg.MaxFacts > 0 && len(facts) > s.cfg.MaxFacts {
		return facts[:s.cfg.MaxFacts]
	}
	return facts
}

// Consume returns the tips once ready and clears them. It returns
// (nil, false) while a request is in flight or when nothing came back.
func (s *Service) Consume() ([]Tip, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	tips := s.tips
	s.tips, s.ready = nil, false
	return tips, len(tips) > 0
}

type tipsOutput struct {
	Tips []Tip `json:"tips"`
}

func (s *Service) generate(ctx context.Context, facts []selector.Question) ([]Tip, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTips)

	req := llm.UserPrompt(systemPrompt, buildPrompt(facts), TipsSchema)
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tips generation: %w", err)
	}
	var out tipsOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse tips response: %w", err)
	}
	return out.Tips, nil
}

func buildPrompt(facts []selector.Question) string {
	var b strings.Builder
	b.WriteString("The learner just missed these facts:\n")
	for _, q := range facts {
		fmt.Fprintf(&b, "- %d x %d = %d\n", q.Row, q.Col, q.Product())
	}
	b.WriteString("\nGive exactly one tip per fact, in the same order. Keep each tip under 20 words.")
	return b.String()
}
