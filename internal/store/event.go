package store

// Every event table carries a sequence column drawn from one global
// counter, so events of different types can be ordered against each
// other and against snapshots.

import (
	"context"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence shared across
// all event types. The mutex serializes within the process; the
// RETURNING clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
}

// Next atomically returns the next sequence number and increments the
// counter. conn may be the driver or an open transaction; inside a
// transaction the increment rolls back with it.
func (sc *sequenceCounter) Next(ctx context.Context, conn dialect.ExecQuerier) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	rows := &entsql.Rows{}
	err := conn.Query(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		[]any{}, rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return seq, nil
}
