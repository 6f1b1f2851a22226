package selector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeightTable(t *testing.T) {
	table := NewWeightTable(DefaultSize)
	assert.Equal(t, 10, table.Size())
	for r := 1; r <= 10; r++ {
		for c := 1; c <= 10; c++ {
			assert.Equal(t, 1.0, table.Weight(r, c))
		}
	}

	assert.Equal(t, DefaultSize, NewWeightTable(0).Size())
}

func TestWeightTable_Bounds(t *testing.T) {
	table := NewWeightTable(DefaultSize)

	assert.True(t, table.Contains(1, 1))
	assert.True(t, table.Contains(10, 10))
	assert.False(t, table.Contains(0, 5))
	assert.False(t, table.Contains(5, 11))
	assert.Zero(t, table.Weight(11, 1))

	require.ErrorIs(t, table.SetWeight(0, 3, 2), ErrOutOfRange)
}

func TestWeightTable_SetWeightClamps(t *testing.T) {
	table := NewWeightTable(DefaultSize)

	require.NoError(t, table.SetWeight(2, 3, -1))
	assert.Zero(t, table.Weight(2, 3))

	require.NoError(t, table.SetWeight(2, 3, math.NaN()))
	assert.Zero(t, table.Weight(2, 3))

	require.NoError(t, table.SetWeight(2, 3, 0.1+0.2))
	assert.Equal(t, 0.3, table.Weight(2, 3))
}

func TestWeightTable_CloneIsIndependent(t *testing.T) {
	table := NewWeightTable(DefaultSize)
	clone := table.Clone()
	require.True(t, table.Equal(clone))

	require.NoError(t, clone.SetWeight(7, 8, 3))
	assert.Equal(t, 1.0, table.Weight(7, 8))
	assert.False(t, table.Equal(clone))
}

func TestNewWeightTableFrom(t *testing.T) {
	table := NewWeightTable(4)
	require.NoError(t, table.SetWeight(2, 3, 1.6))

	restored, err := NewWeightTableFrom(4, table.Cells())
	require.NoError(t, err)
	assert.True(t, table.Equal(restored))
	assert.Equal(t, 1.6, restored.Weight(2, 3))

	_, err = NewWeightTableFrom(4, make([]float64, 15))
	assert.Error(t, err)

	_, err = NewWeightTableFrom(0, nil)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, ClassicConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }},
		{"negative step", func(c *Config) { c.Step = -0.2 }},
		{"zero scale", func(c *Config) { c.AcceptanceScale = 0 }},
		{"zero divisor", func(c *Config) { c.TrivialDivisor = 0 }},
		{"max level beyond size", func(c *Config) { c.MaxLevel = 11 }},
		{"max level too small for batch", func(c *Config) { c.MaxLevel = 3 }},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"unknown variant", func(c *Config) { c.Variant = "spiral" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_BoundAndMinLevel(t *testing.T) {
	cfg := DefaultConfig()
	b, err := cfg.Bound(6)
	require.NoError(t, err)
	assert.Equal(t, 6, b)
	assert.Equal(t, 4, cfg.MinLevel())

	classic := ClassicConfig()
	b, err = classic.Bound(2)
	require.NoError(t, err)
	assert.Equal(t, 10, b)
	assert.Equal(t, 1, classic.MinLevel())
}

func TestQuestion(t *testing.T) {
	q := Question{Row: 7, Col: 8}
	assert.Equal(t, 56, q.Product())
	assert.Equal(t, "7 × 8", q.String())
}

func TestParseQuestion(t *testing.T) {
	tests := []struct {
		in      string
		want    Question
		wantErr bool
	}{
		{in: "7x8", want: Question{Row: 7, Col: 8}},
		{in: " 6 × 9 ", want: Question{Row: 6, Col: 9}},
		{in: "12*3", want: Question{Row: 12, Col: 3}},
		{in: "4X4", want: Question{Row: 4, Col: 4}},
		{in: "7+8", wantErr: true},
		{in: "0x5", wantErr: true},
		{in: "x5", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseQuestion(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
