package selector

import (
	"fmt"
	"math"
)

// weightPrecision bounds floating-point drift from repeated steps so that
// 1.0 - 5*0.2 lands exactly on zero.
const weightPrecision = 1e9

// WeightTable maps every fact (row, col) in [1, n] x [1, n] to a
// non-negative weight. Higher weights are sampled more often.
type WeightTable struct {
	n       int
	weights []float64
}

// NewWeightTable returns an n x n table with every weight set to 1.0.
// Sizes below one fall back to DefaultSize.
func NewWeightTable(n int) *WeightTable {
	if n < 1 {
		n = DefaultSize
	}
	t := &WeightTable{n: n, weights: make([]float64, n*n)}
	t.Reset()
	return t
}

// NewWeightTableFrom restores a table from row-major weights, as returned by Cells.
func NewWeightTableFrom(n int, weights []float64) (*WeightTable, error) {
	if n < 1 {
		return nil, fmt.Errorf("table size must be positive, got %d", n)
	}
	if len(weights) != n*n {
		return nil, fmt.Errorf("expected %d weights for a %dx%d table, got %d", n*n, n, n, len(weights))
	}
	t := &WeightTable{n: n, weights: make([]float64, n*n)}
	for i, w := range weights {
		t.weights[i] = clampWeight(w)
	}
	return t, nil
}

// Size returns n, the largest factor in the table.
func (t *WeightTable) Size() int {
	return t.n
}

// Contains reports whether (row, col) lies inside the table.
func (t *WeightTable) Contains(row, col int) bool {
	return row >= 1 && row <= t.n && col >= 1 && col <= t.n
}

// Weight returns the weight of (row, col), or 0 if the fact is outside the table.
func (t *WeightTable) Weight(row, col int) float64 {
	if !t.Contains(row, col) {
		return 0
	}
	return t.weights[t.index(row, col)]
}

// SetWeight overwrites the weight of (row, col). Negative values clamp to 0.
func (t *WeightTable) SetWeight(row, col int, w float64) error {
	if !t.Contains(row, col) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d table", ErrOutOfRange, row, col, t.n, t.n)
	}
	t.weights[t.index(row, col)] = clampWeight(w)
	return nil
}

// Cells returns a row-major copy of all weights.
func (t *WeightTable) Cells() []float64 {
	out := make([]float64, len(t.weights))
	copy(out, t.weights)
	return out
}

// Clone returns an independent copy of the table.
func (t *WeightTable) Clone() *WeightTable {
	return &WeightTable{n: t.n, weights: t.Cells()}
}

// Equal reports whether both tables have the same size and weights.
func (t *WeightTable) Equal(other *WeightTable) bool {
	if other == nil || t.n != other.n {
		return false
	}
	for i := range t.weights {
		if t.weights[i] != other.weights[i] {
			return false
		}
	}
	return true
}

// Reset sets every weight back to 1.0.
func (t *WeightTable) Reset() {
	for i := range t.weights {
		t.weights[i] = 1.0
	}
}

func (t *WeightTable) index(row, col int) int {
	return (row-1)*t.n + (col - 1)
}

func clampWeight(w float64) float64 {
	if w < 0 || math.IsNaN(w) {
		return 0
	}
	return math.Round(w*weightPrecision) / weightPrecision
}
