package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryProvider retries transient failures with jittered exponential
// backoff. A rate limit with RetryAfter waits exactly that long. Schema
// violations are retried once. Truncation and context errors are final.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalid := 0

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			invalid++
		}
		if attempt >= attempts || invalid > 1 || isFinal(err) {
			return nil, err
		}

		wait := r.backoff(attempt-1, err)
		log.Debug().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("retrying LLM request")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// isFinal reports errors that another attempt cannot fix.
func isFinal(err error) bool {
	var truncated *ErrMaxTokensExceeded
	return errors.As(err, &truncated) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// backoff is InitialWait * Multiplier^attempt capped at MaxWait, then
// jittered by up to 20% either way.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait)
	for range attempt {
		wait *= r.config.Multiplier
		if wait >= float64(r.config.MaxWait) {
			break
		}
	}
	wait = min(wait, float64(r.config.MaxWait))
	jitter := 0.8 + 0.4*rand.Float64()
	return time.Duration(wait * jitter)
}
