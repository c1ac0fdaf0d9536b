package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type resultRepo struct {
	s *Store
}

func (r *resultRepo) Put(ctx context.Context, snap *ResultSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal result snapshot: %w", err)
	}

	ins := entsql.Dialect(dialect.SQLite).
		Insert(tableResultSnapshots).
		Columns("key", "kind", "data", "updated_at").
		Values(UserSkillsKey, snap.Kind, string(data), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		)
	if err := r.s.exec(ctx, ins); err != nil {
		return fmt.Errorf("save result snapshot: %w", err)
	}
	return nil
}

func (r *resultRepo) Latest(ctx context.Context) (*ResultSnapshot, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("data", "updated_at").
		From(entsql.Table(tableResultSnapshots)).
		Where(entsql.EQ("key", UserSkillsKey))

	var (
		found     bool
		raw       string
		updatedAt int64
	)
	err := r.s.query(ctx, sel, func(rows *entsql.Rows) error {
		if !rows.Next() {
			return nil
		}
		found = true
		return rows.Scan(&raw, &updatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("query result snapshot: %w", err)
	}
	if !found {
		return nil, nil
	}

	var snap ResultSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal result snapshot: %w", err)
	}
	snap.UpdatedAt = time.UnixMilli(updatedAt)
	return &snap, nil
}

func (r *resultRepo) Clear(ctx context.Context) error {
	del := entsql.Dialect(dialect.SQLite).
		Delete(tableResultSnapshots).
		Where(entsql.EQ("key", UserSkillsKey))
	if err := r.s.exec(ctx, del); err != nil {
		return fmt.Errorf("clear result snapshot: %w", err)
	}
	return nil
}
