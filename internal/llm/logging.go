package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/factz/internal/store"
)

// EventSink receives one record per LLM request. store.EventRepo
// satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every request as an llm_request_events row.
type LoggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
}

// WithLogging wraps p so each request is recorded to sink under the
// given provider name.
func WithLogging(p Provider, provider string, sink EventSink) Provider {
	return &LoggingProvider{inner: p, provider: provider, sink: sink}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	log.Debug().
		Str("provider", data.Provider).
		Str("model", data.Model).
		Str("purpose", data.Purpose).
		Int64("latency_ms", data.LatencyMs).
		Bool("success", data.Success).
		Msg("llm request")

	// Recording is best effort; the caller still gets the response.
	if l.sink != nil {
		if logErr := l.sink.AppendLLMRequest(ctx, data); logErr != nil {
			log.Warn().Err(logErr).Msg("record LLM request event")
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders a request for `factz llm view`.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
