package drill

import (
	"github.com/abhisek/factz/internal/grading"
	"github.com/abhisek/factz/internal/selector"
)

// WeightChange records how one fact's weight moved during grading.
type WeightChange struct {
	Question selector.Question
	Before   float64
	After    float64
}

// RoundResult is the outcome of one submitted batch.
type RoundResult struct {
	// Round is the 1-based round number within the session.
	Round int

	Results       []grading.Result
	Correct       int
	Total         int
	AllCorrect    bool
	LevelBefore   int
	LevelAfter    int
	WeightChanges []WeightChange

	// Fallback is set when the batch needed uniform filling.
	Fallback bool
}

// LeveledUp reports whether the round advanced the level.
func (r *RoundResult) LeveledUp() bool {
	return r.LevelAfter > r.LevelBefore
}

// Missed returns the questions answered wrongly, in batch order.
func (r *RoundResult) Missed() []selector.Question {
	var out []selector.Question
	for _, res := range r.Results {
		if !res.Correct {
			out = append(out, res.Question)
		}
	}
	return out
}
