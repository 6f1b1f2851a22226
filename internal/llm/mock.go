package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned MockProvider reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON builds a canned reply from any JSON-encodable value.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{Content: b, Usage: newUsage(10, len(b))}
}

// MockProvider replays canned responses in FIFO order and records every
// request. An empty queue yields ErrProviderUnavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
}

// NewMockProvider returns a MockProvider queued with responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues another canned response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns a copy of the recorded requests.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
