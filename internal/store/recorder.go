package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/factz/internal/drill"
)

// SnapshotVersion is the current SnapshotData layout.
const SnapshotVersion = 1

// DefaultSnapshotKeep is the number of snapshots retained after each round.
const DefaultSnapshotKeep = 20

// Recorder persists drill progress: session events, graded rounds and a
// snapshot of the weight table after every round.
type Recorder struct {
	events    EventRepo
	snapshots SnapshotRepo
	keep      int
	now       func() time.Time
}

// NewRecorder returns a drill.Recorder writing to s.
func NewRecorder(s *Store) *Recorder {
	return &Recorder{
		events:    s.EventRepo(),
		snapshots: s.SnapshotRepo(),
		keep:      DefaultSnapshotKeep,
		now:       time.Now,
	}
}

var _ drill.Recorder = (*Recorder)(nil)

func (r *Recorder) RecordStart(ctx context.Context, sessionID string, level int) error {
	return r.events.AppendSessionEvent(ctx, SessionEventData{
		SessionID: sessionID,
		Action:    ActionStart,
		Level:     level,
	})
}

func (r *Recorder) RecordRound(ctx context.Context, sessionID string, res *drill.RoundResult, state drill.State) error {
	data := RoundEventData{
		SessionID:   sessionID,
		Round:       res.Round,
		LevelBefore: res.LevelBefore,
		LevelAfter:  res.LevelAfter,
		Correct:     res.Correct,
		Total:       res.Total,
		Fallback:    res.Fallback,
		Answers:     make([]AnswerEventData, len(res.Results)),
	}
	for i, g := range res.Results {
		a := AnswerEventData{
			Row:           g.Question.Row,
			Col:           g.Question.Col,
			LearnerAnswer: g.Input,
			Parsed:        g.Parsed,
			Correct:       g.Correct,
		}
		if i < len(res.WeightChanges) {
			a.WeightBefore = res.WeightChanges[i].Before
			a.WeightAfter = res.WeightChanges[i].After
		}
		data.Answers[i] = a
	}

	seq, err := r.events.AppendRound(ctx, data)
	if err != nil {
		return err
	}

	st := state
	if err := r.snapshots.Save(ctx, &Snapshot{
		Sequence:  seq,
		Timestamp: r.now(),
		Data:      SnapshotData{Version: SnapshotVersion, Drill: &st},
	}); err != nil {
		return err
	}
	if err := r.snapshots.Prune(ctx, r.keep); err != nil {
		return fmt.Errorf("prune after round %d: %w", res.Round, err)
	}
	return nil
}

func (r *Recorder) RecordEnd(ctx context.Context, summary drill.SessionSummary, state drill.State) error {
	return r.events.AppendSessionEvent(ctx, SessionEventData{
		SessionID:    summary.SessionID,
		Action:       ActionEnd,
		Level:        state.Level,
		Rounds:       summary.Rounds,
		Questions:    summary.Questions,
		Correct:      summary.Correct,
		DurationSecs: int(summary.Duration.Seconds()),
	})
}

// LatestDrillState returns the drill state from the newest snapshot, or
// nil if there is none.
func LatestDrillState(ctx context.Context, repo SnapshotRepo) (*drill.State, error) {
	snap, err := repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil || snap.Data.Drill == nil {
		return nil, nil
	}
	return snap.Data.Drill, nil
}
