package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by the ent SQL driver and the
// global sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// applyOpts adds QueryOpts filters to a selector over an event table.
func applyOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", toMillis(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", toMillis(opts.To)))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx, r.drv)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert("session_events").
		Columns("sequence", "timestamp", "session_id", "action", "level",
			"rounds", "questions", "correct", "duration_secs").
		Values(seqNum, toMillis(r.now()), data.SessionID, data.Action, data.Level,
			data.Rounds, data.Questions, data.Correct, data.DurationSecs).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendRound(ctx context.Context, data RoundEventData) (int64, error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin round tx: %w", err)
	}

	seqNum, err := r.appendRound(ctx, tx, data)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit round: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) appendRound(ctx context.Context, tx dialect.Tx, data RoundEventData) (int64, error) {
	ts := toMillis(r.now())

	seqNum, err := r.seq.Next(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	query, args := sqlite().Insert("round_events").
		Columns("sequence", "timestamp", "session_id", "round", "level_before",
			"level_after", "correct", "total", "fallback").
		Values(seqNum, ts, data.SessionID, data.Round, data.LevelBefore,
			data.LevelAfter, data.Correct, data.Total, boolInt(data.Fallback)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return 0, fmt.Errorf("save round event: %w", err)
	}

	if len(data.Answers) == 0 {
		return seqNum, nil
	}

	insert := sqlite().Insert("answer_events").
		Columns("sequence", "timestamp", "session_id", "round", "row_factor", "col_factor",
			"learner_answer", "parsed", "correct", "weight_before", "weight_after")
	for _, a := range data.Answers {
		answerSeq, err := r.seq.Next(ctx, tx)
		if err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		insert.Values(answerSeq, ts, data.SessionID, data.Round, a.Row, a.Col,
			a.LearnerAnswer, a.Parsed, boolInt(a.Correct), a.WeightBefore, a.WeightAfter)
	}
	query, args = insert.Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return 0, fmt.Errorf("save answer events: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, limit int) ([]SessionRecord, error) {
	query, args := sqlite().
		Select("session_id", "action", "timestamp", "level", "rounds", "questions", "correct", "duration_secs").
		From(entsql.Table("session_events")).
		OrderBy("sequence").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var order []string
	byID := make(map[string]*SessionRecord)
	for rows.Next() {
		var (
			id, action                                string
			ts                                        int64
			level, rounds, questions, correct, durSec int
		)
		if err := rows.Scan(&id, &action, &ts, &level, &rounds, &questions, &correct, &durSec); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}

		rec, ok := byID[id]
		if !ok {
			rec = &SessionRecord{SessionID: id}
			byID[id] = rec
			order = append(order, id)
		}
		switch action {
		case ActionStart:
			rec.StartedAt = fromMillis(ts)
			rec.StartLevel = level
			rec.EndLevel = level
		case ActionEnd:
			rec.EndedAt = fromMillis(ts)
			rec.EndLevel = level
			rec.Rounds = rounds
			rec.Questions = questions
			rec.Correct = correct
			rec.DurationSecs = durSec
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}

	out := make([]SessionRecord, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		out = append(out, *byID[order[i]])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *eventRepo) QueryRounds(ctx context.Context, opts QueryOpts) ([]RoundRecord, error) {
	sel := sqlite().
		Select("sequence", "timestamp", "session_id", "round", "level_before",
			"level_after", "correct", "total", "fallback").
		From(entsql.Table("round_events"))
	query, args := applyOpts(sel, opts).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		var (
			rr RoundRecord
			ts int64
		)
		if err := rows.Scan(&rr.Sequence, &ts, &rr.SessionID, &rr.Round, &rr.LevelBefore,
			&rr.LevelAfter, &rr.Correct, &rr.Total, &rr.Fallback); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rr.Timestamp = fromMillis(ts)
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *eventRepo) FactAccuracy(ctx context.Context) ([]FactAccuracy, error) {
	query, args := sqlite().
		Select("row_factor", "col_factor", entsql.Count("*"), entsql.Sum("correct")).
		From(entsql.Table("answer_events")).
		GroupBy("row_factor", "col_factor").
		OrderBy("row_factor", "col_factor").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query fact accuracy: %w", err)
	}
	defer rows.Close()

	var out []FactAccuracy
	for rows.Next() {
		var fa FactAccuracy
		if err := rows.Scan(&fa.Row, &fa.Col, &fa.Attempts, &fa.Correct); err != nil {
			return nil, fmt.Errorf("scan fact accuracy: %w", err)
		}
		out = append(out, fa)
	}
	return out, rows.Err()
}
