package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit means the provider answered 429. RetryAfter is zero when
// the provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the output was not JSON or broke the schema.
// Content holds what the model sent.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string { return "invalid LLM response: " + e.Err.Error() }
func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network failures and non-429 API errors.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	const msg = "LLM provider unavailable"
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means generation stopped at Request.MaxTokens.
// Content is the partial output.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated at max tokens"
}

// classifySDK turns an SDK call error into one of the typed errors above.
// E is the SDK's API error type and status extracts its HTTP status.
func classifySDK[E error](err error, status func(E) int) error {
	var apiErr E
	if errors.As(err, &apiErr) && status(apiErr) == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

func IsRateLimit(err error) bool {
	var rl *ErrRateLimit
	return errors.As(err, &rl)
}
