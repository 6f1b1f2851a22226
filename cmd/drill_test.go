package cmd

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/abhisek/factz/internal/drill"
)

func newLineDrill(t *testing.T) *core.Drill {
	t.Helper()
	d, err := core.New(core.DefaultConfig(), core.WithRand(rand.New(rand.NewPCG(3, 5))))
	require.NoError(t, err)
	return d
}

func TestPlayLinesBlankRound(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader(strings.Repeat("\n", 10))

	require.NoError(t, playLines(context.Background(), newLineDrill(t), 1, in, &out))

	got := out.String()
	assert.Contains(t, got, "Round 1 · level 4")
	assert.Contains(t, got, "0 / 10 correct.")
	assert.Contains(t, got, "Rounds:      1")
	assert.Contains(t, got, "Keep practicing:")
}

func TestPlayLinesQuitEarly(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("12\nq\n")

	require.NoError(t, playLines(context.Background(), newLineDrill(t), 0, in, &out))

	got := out.String()
	assert.Contains(t, got, "Rounds:      0")
	assert.NotContains(t, got, "correct.")
}

func TestPlayLinesInputEnds(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, playLines(context.Background(), newLineDrill(t), 0, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Session summary")
}
