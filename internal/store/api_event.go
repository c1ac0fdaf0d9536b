package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on top of the shared sequence counter.
type eventRepo struct {
	s *Store
}

func (r *eventRepo) AppendAPIRequest(ctx context.Context, data APIRequestEventData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := entsql.Dialect(dialect.SQLite).
		Insert(tableAPIEvents).
		Columns("sequence", "timestamp", "request_id", "method", "endpoint",
			"status_code", "latency_ms", "success", "error_message").
		Values(seqNum, time.Now().UnixMilli(), data.RequestID, data.Method, data.Endpoint,
			data.StatusCode, data.LatencyMs, data.Success, data.ErrorMessage)
	if err := r.s.exec(ctx, ins); err != nil {
		return fmt.Errorf("save API request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAPIEvents(ctx context.Context, opts QueryOpts) ([]APIRequestEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "request_id", "method", "endpoint",
			"status_code", "latency_ms", "success", "error_message").
		From(entsql.Table(tableAPIEvents))
	applyQueryOpts(sel, opts)

	var out []APIRequestEvent
	err := r.s.query(ctx, sel, func(rows *entsql.Rows) error {
		for rows.Next() {
			var (
				e  APIRequestEvent
				ts int64
			)
			if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.RequestID, &e.Method, &e.Endpoint,
				&e.StatusCode, &e.LatencyMs, &e.Success, &e.ErrorMessage); err != nil {
				return err
			}
			e.Timestamp = time.UnixMilli(ts)
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query API events: %w", err)
	}
	return out, nil
}

// applyQueryOpts adds the common filters, newest first.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
