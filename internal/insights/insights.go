// Package insights summarizes a weight table for display: overall
// statistics, the hardest facts and heat buckets.
package insights

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/abhisek/factz/internal/selector"
)

// WeightStats describes the distribution of weights in a table.
type WeightStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64

	// Mastered counts facts whose weight reached zero.
	Mastered int

	// Struggling counts facts weighted above the starting weight.
	Struggling int
}

// FactWeight pairs a fact with its current weight.
type FactWeight struct {
	Question selector.Question
	Weight   float64
}

// Analyze computes statistics over every cell of the table.
func Analyze(table *selector.WeightTable) WeightStats {
	return analyze(table.Cells())
}

// AnalyzeBound computes statistics over facts with both factors in [1, bound].
func AnalyzeBound(table *selector.WeightTable, bound int) WeightStats {
	if bound > table.Size() {
		bound = table.Size()
	}
	var ws []float64
	for r := 1; r <= bound; r++ {
		for c := 1; c <= bound; c++ {
			ws = append(ws, table.Weight(r, c))
		}
	}
	return analyze(ws)
}

func analyze(ws []float64) WeightStats {
	if len(ws) == 0 {
		return WeightStats{}
	}

	sorted := make([]float64, len(ws))
	copy(sorted, ws)
	sort.Float64s(sorted)

	s := WeightStats{
		Count:  len(ws),
		Min:    floats.Min(ws),
		Max:    floats.Max(ws),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(ws) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(ws, nil)
	} else {
		s.Mean = ws[0]
	}

	for _, w := range ws {
		switch {
		case w == 0:
			s.Mastered++
		case w > 1:
			s.Struggling++
		}
	}
	return s
}

// Hardest returns up to k facts with the highest weights. Ties are broken
// by row, then column.
func Hardest(table *selector.WeightTable, k int) []FactWeight {
	if k <= 0 {
		return nil
	}
	n := table.Size()
	all := make([]FactWeight, 0, n*n)
	for r := 1; r <= n; r++ {
		for c := 1; c <= n; c++ {
			q := selector.Question{Row: r, Col: c}
			all = append(all, FactWeight{Question: q, Weight: table.Weight(r, c)})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Weight > all[j].Weight
	})

	if k > len(all) {
		k = len(all)
	}
	return all[:k]
}

// Heat buckets for rendering.
const (
	HeatMastered   = 0 // weight 0
	HeatImproving  = 1 // below the starting weight
	HeatNeutral    = 2 // at the starting weight
	HeatStruggling = 3 // up to 1.6
	HeatHot        = 4 // above 1.6
)

// Heat maps a weight to a display bucket in [0, 4].
func Heat(w float64) int {
	switch {
	case w <= 0:
		return HeatMastered
	case w < 1:
		return HeatImproving
	case w == 1:
		return HeatNeutral
	case w <= 1.6:
		return HeatStruggling
	default:
		return HeatHot
	}
}
