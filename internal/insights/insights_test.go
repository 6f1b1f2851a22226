package insights

import (
	"math"
	"testing"

	"github.com/abhisek/factz/internal/selector"
)

func TestAnalyze_FreshTable(t *testing.T) {
	s := Analyze(selector.NewWeightTable(10))

	if s.Count != 100 {
		t.Errorf("Count = %d, want 100", s.Count)
	}
	if s.Mean != 1 || s.Min != 1 || s.Max != 1 || s.Median != 1 {
		t.Errorf("unexpected stats for uniform table: %+v", s)
	}
	if s.StdDev != 0 {
		t.Errorf("StdDev = %g, want 0", s.StdDev)
	}
	if s.Mastered != 0 || s.Struggling != 0 {
		t.Errorf("Mastered/Struggling = %d/%d, want 0/0", s.Mastered, s.Struggling)
	}
}

func TestAnalyze_MixedWeights(t *testing.T) {
	table := selector.NewWeightTable(2)
	table.SetWeight(1, 1, 0)
	table.SetWeight(1, 2, 0.6)
	table.SetWeight(2, 2, 2.2)

	s := Analyze(table)
	if s.Mastered != 1 {
		t.Errorf("Mastered = %d, want 1", s.Mastered)
	}
	if s.Struggling != 1 {
		t.Errorf("Struggling = %d, want 1", s.Struggling)
	}
	if math.Abs(s.Mean-0.95) > 1e-9 {
		t.Errorf("Mean = %g, want 0.95", s.Mean)
	}
	if s.Min != 0 || s.Max != 2.2 {
		t.Errorf("Min/Max = %g/%g, want 0/2.2", s.Min, s.Max)
	}
	if s.StdDev <= 0 {
		t.Errorf("StdDev = %g, want > 0", s.StdDev)
	}
}

func TestAnalyzeBound(t *testing.T) {
	table := selector.NewWeightTable(10)
	table.SetWeight(9, 9, 3)

	s := AnalyzeBound(table, 4)
	if s.Count != 16 {
		t.Errorf("Count = %d, want 16", s.Count)
	}
	if s.Max != 1 {
		t.Errorf("Max = %g, want 1 (9 × 9 is outside the bound)", s.Max)
	}
}

func TestHardest_OrderAndTies(t *testing.T) {
	table := selector.NewWeightTable(10)
	table.SetWeight(7, 8, 1.8)
	table.SetWeight(6, 7, 1.4)
	table.SetWeight(3, 9, 1.4)

	got := Hardest(table, 4)
	want := []selector.Question{{Row: 7, Col: 8}, {Row: 3, Col: 9}, {Row: 6, Col: 7}, {Row: 1, Col: 1}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Question != want[i] {
			t.Errorf("Hardest[%d] = %s, want %s", i, got[i].Question, want[i])
		}
	}

	if Hardest(table, 0) != nil {
		t.Error("Hardest(k=0) should be nil")
	}
	if n := len(Hardest(table, 500)); n != 100 {
		t.Errorf("Hardest(k=500) len = %d, want 100", n)
	}
}

func TestHeat(t *testing.T) {
	tests := []struct {
		w    float64
		want int
	}{
		{0, HeatMastered},
		{0.4, HeatImproving},
		{1, HeatNeutral},
		{1.2, HeatStruggling},
		{1.6, HeatStruggling},
		{2.4, HeatHot},
	}
	for _, tc := range tests {
		if got := Heat(tc.w); got != tc.want {
			t.Errorf("Heat(%g) = %d, want %d", tc.w, got, tc.want)
		}
	}
}
