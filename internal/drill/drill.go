// Package drill runs a practice session: it serves batches from the
// adaptive selector, grades submitted answers and feeds the outcome back
// into the weight table and level.
package drill

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/factz/internal/grading"
	"github.com/abhisek/factz/internal/selector"
)

// Recorder persists session progress. Failures are logged by the drill
// and never undo grading.
type Recorder interface {
	RecordStart(ctx context.Context, sessionID string, level int) error
	RecordRound(ctx context.Context, sessionID string, result *RoundResult, state State) error
	RecordEnd(ctx context.Context, summary SessionSummary, state State) error
}

// Drill owns the weight table, level and random source of one session.
// It is not safe for concurrent use.
type Drill struct {
	cfg       Config
	rng       selector.Rand
	recorder  Recorder
	sessionID string
	now       func() time.Time

	table *selector.WeightTable
	level int
	phase Phase
	batch selector.Batch

	started    bool
	startLevel int
	startTime  time.Time
	rounds     int
	questions  int
	correct    int
	streak     int
	bestStreak int

	// priorRounds carries the round count of a resumed state.
	priorRounds int
}

// Option configures a Drill.
type Option func(*Drill) error

// WithRand sets the random source. Tests pass a seeded PCG source.
func WithRand(rng selector.Rand) Option {
	return func(d *Drill) error {
		d.rng = rng
		return nil
	}
}

// WithRecorder attaches a persistence sink.
func WithRecorder(r Recorder) Option {
	return func(d *Drill) error {
		d.recorder = r
		return nil
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(d *Drill) error {
		d.sessionID = id
		return nil
	}
}

// WithClock overrides time.Now for duration tracking.
func WithClock(now func() time.Time) Option {
	return func(d *Drill) error {
		d.now = now
		return nil
	}
}

// WithState resumes from a saved table and level.
func WithState(st State) Option {
	return func(d *Drill) error {
		table, err := st.Table()
		if err != nil {
			return fmt.Errorf("restore weight table: %w", err)
		}
		if table.Size() != d.cfg.Selector.Size {
			return fmt.Errorf("%w: saved table %d, config %d",
				selector.ErrSizeMismatch, table.Size(), d.cfg.Selector.Size)
		}
		level := st.Level
		if minLevel := d.cfg.Selector.MinLevel(); level < minLevel {
			level = minLevel
		}
		if level > d.cfg.Selector.MaxLevel {
			level = d.cfg.Selector.MaxLevel
		}
		d.table = table
		d.level = level
		d.priorRounds = st.Rounds
		return nil
	}
}

// New creates a drill with a fresh table (all weights 1.0) at
// cfg.StartLevel unless WithState says otherwise.
func New(cfg Config, opts ...Option) (*Drill, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid drill config: %w", err)
	}

	d := &Drill{
		cfg:   cfg,
		now:   time.Now,
		table: selector.NewWeightTable(cfg.Selector.Size),
		level: cfg.StartLevel,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if d.sessionID == "" {
		d.sessionID = uuid.New().String()
	}
	d.startLevel = d.level
	return d, nil
}

// Start serves the first batch. It must be called exactly once.
func (d *Drill) Start(ctx context.Context) error {
	if d.started {
		return ErrAlreadyStarted
	}

	batch, err := selector.GenerateBatch(d.rng, d.table, d.level, d.cfg.Selector)
	if err != nil {
		return fmt.Errorf("generate first batch: %w", err)
	}
	d.batch = batch
	d.phase = PhaseAwaitingAnswers
	d.started = true
	d.startTime = d.now()

	if d.recorder != nil {
		if err := d.recorder.RecordStart(ctx, d.sessionID, d.level); err != nil {
			log.Warn().Err(err).Str("session_id", d.sessionID).Msg("record session start")
		}
	}
	return nil
}

// Current returns the outstanding batch.
func (d *Drill) Current() selector.Batch {
	return d.batch
}

// Phase returns the current round phase.
func (d *Drill) Phase() Phase {
	return d.phase
}

// Level returns the current level.
func (d *Drill) Level() int {
	return d.level
}

// Round returns the number of rounds graded this session.
func (d *Drill) Round() int {
	return d.rounds
}

// Streak returns the current run of consecutive perfect rounds.
func (d *Drill) Streak() int {
	return d.streak
}

// SessionID returns the session's UUID.
func (d *Drill) SessionID() string {
	return d.sessionID
}

// Config returns the drill configuration.
func (d *Drill) Config() Config {
	return d.cfg
}

// Table returns a copy of the current weight table.
func (d *Drill) Table() *selector.WeightTable {
	return d.table.Clone()
}

// Submit grades one input per question of the current batch, applies
// weight feedback and level advancement, and moves the drill to the
// graded phase.
func (d *Drill) Submit(ctx context.Context, inputs []string) (*RoundResult, error) {
	if !d.started {
		return nil, ErrNotStarted
	}
	if d.phase != PhaseAwaitingAnswers {
		return nil, ErrNotAwaitingAnswers
	}
	if len(inputs) != d.batch.Len() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrAnswerCount, len(inputs), d.batch.Len())
	}

	results := grading.GradeBatch(d.batch, inputs)
	correct := grading.CountCorrect(results)
	allCorrect := correct == len(results)

	changes := make([]WeightChange, len(results))
	for i, r := range results {
		changes[i] = WeightChange{
			Question: r.Question,
			Before:   d.table.Weight(r.Question.Row, r.Question.Col),
		}
	}
	selector.RecordFeedback(d.table, grading.Records(results), d.cfg.Selector.Step)
	for i := range changes {
		q := changes[i].Question
		changes[i].After = d.table.Weight(q.Row, q.Col)
	}

	levelBefore := d.level
	d.level = selector.AdvanceLevel(d.level, allCorrect, d.cfg.Selector.MaxLevel)

	d.rounds++
	d.questions += len(results)
	d.correct += correct
	if allCorrect {
		d.streak++
		if d.streak > d.bestStreak {
			d.bestStreak = d.streak
		}
	} else {
		d.streak = 0
	}
	d.phase = PhaseGraded

	result := &RoundResult{
		Round:         d.rounds,
		Results:       results,
		Correct:       correct,
		Total:         len(results),
		AllCorrect:    allCorrect,
		LevelBefore:   levelBefore,
		LevelAfter:    d.level,
		WeightChanges: changes,
		Fallback:      d.batch.Fallback,
	}

	log.Debug().
		Str("session_id", d.sessionID).
		Int("round", result.Round).
		Int("correct", correct).
		Int("level", d.level).
		Msg("round graded")

	if d.recorder != nil {
		if err := d.recorder.RecordRound(ctx, d.sessionID, result, d.State()); err != nil {
			log.Warn().Err(err).Str("session_id", d.sessionID).Int("round", result.Round).Msg("record round")
		}
	}
	return result, nil
}

// Next serves a new batch at the current level.
func (d *Drill) Next(ctx context.Context) (selector.Batch, error) {
	if !d.started {
		return selector.Batch{}, ErrNotStarted
	}
	if d.phase != PhaseGraded {
		return selector.Batch{}, ErrRoundOutstanding
	}
	if err := ctx.Err(); err != nil {
		return selector.Batch{}, err
	}

	batch, err := selector.GenerateBatch(d.rng, d.table, d.level, d.cfg.Selector)
	if err != nil {
		return selector.Batch{}, fmt.Errorf("generate batch: %w", err)
	}
	if batch.Fallback {
		log.Info().Str("session_id", d.sessionID).Int("attempts", batch.Attempts).Msg("batch filled uniformly")
	}
	d.batch = batch
	d.phase = PhaseAwaitingAnswers
	return batch, nil
}

// Finish records the end of the session and returns its summary.
func (d *Drill) Finish(ctx context.Context) SessionSummary {
	summary := d.Summary()
	if d.recorder != nil && d.started {
		if err := d.recorder.RecordEnd(ctx, summary, d.State()); err != nil {
			log.Warn().Err(err).Str("session_id", d.sessionID).Msg("record session end")
		}
	}
	return summary
}

// State captures the table and level for snapshots.
func (d *Drill) State() State {
	return State{
		Level:   d.level,
		Size:    d.table.Size(),
		Weights: d.table.Cells(),
		Rounds:  d.priorRounds + d.rounds,
	}
}
