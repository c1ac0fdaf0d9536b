package store

import (
	"context"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const tableSequence = "global_sequence"

// sequenceCounter orders API and LLM events against each other. It is a
// single row incremented with RETURNING; mu keeps callers in this process
// from interleaving.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

func openSequence(ctx context.Context, s *Store) (*sequenceCounter, error) {
	create := entsql.Dialect(dialect.SQLite).
		CreateTable(tableSequence).IfNotExists().
		Columns(
			entsql.Column("id").Type("INTEGER").Attr("PRIMARY KEY CHECK (id = 1)"),
			entsql.Column("next_val").Type("INTEGER").Attr("NOT NULL DEFAULT 1"),
		)
	if err := s.exec(ctx, create); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	seed := `INSERT OR IGNORE INTO ` + tableSequence + ` (id, next_val) VALUES (1, 1)`
	if err := s.drv.Exec(ctx, seed, []any{}, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{drv: s.drv}, nil
}

// Next returns the current value and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var rows entsql.Rows
	q := `UPDATE ` + tableSequence + ` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`
	if err := sc.drv.Query(ctx, q, []any{}, &rows); err != nil {
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
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
