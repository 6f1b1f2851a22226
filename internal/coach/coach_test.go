package coach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/factz/internal/llm"
	"github.com/abhisek/factz/internal/selector"
)

func waitTips(t *testing.T, svc *Service) ([]Tip, bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if tips, ok := svc.Consume(); ok {
			return tips, true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil, false
}

func TestService_RequestTips(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(tipsOutput{Tips: []Tip{
		{Fact: "7 x 8", Tip: "5, 6, 7, 8: 56 is 7 times 8."},
		{Fact: "6 x 9", Tip: "Tens digit is one less than 6."},
	}}))
	svc := NewService(mock, DefaultConfig())
	require.True(t, svc.Enabled())

	svc.RequestTips(context.Background(), []selector.Question{{Row: 7, Col: 8}, {Row: 6, Col: 9}})

	tips, ok := waitTips(t, svc)
	require.True(t, ok, "tips never arrived")
	assert.Len(t, tips, 2)
	assert.Equal(t, "7 x 8", tips[0].Fact)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "memory-tips", calls[0].Schema.Name)
	assert.Contains(t, calls[0].Messages[0].Content, "7 x 8 = 56")
	assert.Contains(t, calls[0].Messages[0].Content, "6 x 9 = 54")

	_, again := svc.Consume()
	assert.False(t, again, "tips are consumed once")
}

func TestService_CapsFacts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(tipsOutput{Tips: []Tip{{Fact: "2 x 2", Tip: "Double 2."}}}))
	cfg := DefaultConfig()
	cfg.MaxFacts = 2
	svc := NewService(mock, cfg)

	svc.RequestTips(context.Background(), []selector.Question{{Row: 2, Col: 2}, {Row: 3, Col: 3}, {Row: 4, Col: 4}})
	_, ok := waitTips(t, svc)
	require.True(t, ok)

	prompt := mock.Calls()[0].Messages[0].Content
	assert.Equal(t, 2, strings.Count(prompt, "\n- "))
	assert.NotContains(t, prompt, "4 x 4")
}

func TestService_ProviderErrorYieldsNothing(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("offline")})
	svc := NewService(mock, DefaultConfig())

	svc.RequestTips(context.Background(), []selector.Question{{Row: 3, Col: 4}})

	require.Eventually(t, func() bool { return mock.CallCount() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	tips, ok := svc.Consume()
	assert.False(t, ok)
	assert.Empty(t, tips)
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	assert.False(t, svc.Enabled())
	svc.RequestTips(context.Background(), []selector.Question{{Row: 3, Col: 4}})
	_, ok := svc.Consume()
	assert.False(t, ok)

	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())
	_, ok = nilSvc.Consume()
	assert.False(t, ok)
}

func TestService_NoFactsNoRequest(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())
	svc.RequestTips(context.Background(), nil)
	assert.Equal(t, 0, mock.CallCount())
}

func TestService_TipsSync(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(tipsOutput{Tips: []Tip{{Fact: "9 x 9", Tip: "Fingers trick."}}}))
	svc := NewService(mock, DefaultConfig())

	tips, err := svc.Tips(context.Background(), []selector.Question{{Row: 9, Col: 9}})
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, "Fingers trick.", tips[0].Tip)

	_, err = NewService(nil, DefaultConfig()).Tips(context.Background(), []selector.Question{{Row: 9, Col: 9}})
	assert.ErrorIs(t, err, ErrDisabled)
}
