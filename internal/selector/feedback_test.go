package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFeedback_CorrectAnswersFloorAtZero(t *testing.T) {
	table := NewWeightTable(DefaultSize)
	want := []float64{0.8, 0.6, 0.4, 0.2, 0, 0}

	for i, w := range want {
		n := RecordFeedback(table, []AnswerRecord{{Row: 3, Col: 4, Correct: true}}, DefaultStep)
		require.Equal(t, 1, n)
		assert.Equalf(t, w, table.Weight(3, 4), "after %d correct answers", i+1)
	}
}

func TestRecordFeedback_WrongAnswerRaisesWeight(t *testing.T) {
	table := NewWeightTable(DefaultSize)

	RecordFeedback(table, []AnswerRecord{{Row: 3, Col: 4, Correct: false}}, DefaultStep)
	assert.Equal(t, 1.2, table.Weight(3, 4))

	RecordFeedback(table, []AnswerRecord{{Row: 3, Col: 4, Correct: false}}, DefaultStep)
	assert.Equal(t, 1.4, table.Weight(3, 4))

	// (4, 3) is a separate fact.
	assert.Equal(t, 1.0, table.Weight(4, 3))
}

func TestRecordFeedback_EmptyIsNoop(t *testing.T) {
	table := NewWeightTable(DefaultSize)
	require.NoError(t, table.SetWeight(2, 9, 0.4))
	before := table.Clone()

	assert.Zero(t, RecordFeedback(table, nil, DefaultStep))
	assert.True(t, table.Equal(before))
}

func TestRecordFeedback_SkipsOutOfRange(t *testing.T) {
	table := NewWeightTable(DefaultSize)
	before := table.Clone()

	n := RecordFeedback(table, []AnswerRecord{
		{Row: 0, Col: 4, Correct: true},
		{Row: 11, Col: 2, Correct: false},
		{Row: 5, Col: 5, Correct: true},
	}, DefaultStep)

	assert.Equal(t, 1, n)
	assert.Equal(t, 0.8, table.Weight(5, 5))
	require.NoError(t, before.SetWeight(5, 5, 0.8))
	assert.True(t, table.Equal(before))
}

func TestRecordFeedback_WeightsStayNonNegative(t *testing.T) {
	table := NewWeightTable(DefaultSize)
	rng := newRand(5)

	for round := 0; round < 300; round++ {
		answers := make([]AnswerRecord, 10)
		for i := range answers {
			answers[i] = AnswerRecord{
				Row:     rng.IntN(DefaultSize) + 1,
				Col:     rng.IntN(DefaultSize) + 1,
				Correct: rng.Float64() < 0.8,
			}
		}
		RecordFeedback(table, answers, DefaultStep)
	}

	for _, w := range table.Cells() {
		assert.GreaterOrEqual(t, w, 0.0)
	}
}

func TestAdvanceLevel(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		allCorrect bool
		want       int
	}{
		{"perfect round advances", 5, true, 6},
		{"missed answer holds", 5, false, 5},
		{"saturates at max", 10, true, 10},
		{"never decreases", 4, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdvanceLevel(tt.level, tt.allCorrect, DefaultMaxLevel))
		})
	}
}
