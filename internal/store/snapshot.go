package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo using the ent SQL driver.
type snapshotRepo struct {
	drv *entsql.Driver
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	query, args := sqlite().Insert("snapshots").
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, toMillis(snap.Timestamp), string(data)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := sqlite().Select("id", "sequence", "timestamp", "data").
		From(entsql.Table("snapshots")).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query latest snapshot: %w", err)
		}
		return nil, nil
	}

	var (
		s   Snapshot
		ts  int64
		raw string
	)
	if err := rows.Scan(&s.ID, &s.Sequence, &ts, &raw); err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &s.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	s.Timestamp = fromMillis(ts)
	return &s, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Collect the IDs of the newest snapshots to keep.
	query, args := sqlite().Select("id").
		From(entsql.Table("snapshots")).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(keep).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	var keepIDs []any
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan snapshot id: %w", err)
		}
		keepIDs = append(keepIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	del := sqlite().Delete("snapshots")
	if len(keepIDs) > 0 {
		del.Where(entsql.NotIn("id", keepIDs...))
	}
	query, args = del.Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
