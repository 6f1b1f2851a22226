package drill

import (
	"time"

	"github.com/abhisek/factz/internal/insights"
)

// maxHardest is the number of facts listed on the summary.
const maxHardest = 5

// SessionSummary holds the data displayed at the end of a session.
type SessionSummary struct {
	SessionID  string
	Rounds     int
	Questions  int
	Correct    int
	Accuracy   float64
	StartLevel int
	Level      int

	// BestStreak is the longest run of consecutive perfect rounds.
	BestStreak int

	Duration time.Duration

	// Hardest lists facts weighted above their starting weight, heaviest first.
	Hardest []insights.FactWeight
}

// Summary builds the summary for the session so far.
func (d *Drill) Summary() SessionSummary {
	s := SessionSummary{
		SessionID:  d.sessionID,
		Rounds:     d.rounds,
		Questions:  d.questions,
		Correct:    d.correct,
		StartLevel: d.startLevel,
		Level:      d.level,
		BestStreak: d.bestStreak,
		Duration:   d.now().Sub(d.startTime),
	}
	if d.questions > 0 {
		s.Accuracy = float64(d.correct) / float64(d.questions)
	}
	for _, fw := range insights.Hardest(d.table, maxHardest) {
		if fw.Weight > 1 {
			s.Hardest = append(s.Hardest, fw)
		}
	}
	return s
}
