package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableResultSnapshots = "result_snapshots"
	tableAPIEvents       = "api_request_events"
	tableLLMEvents       = "llm_request_events"
)

func (s *Store) migrate(ctx context.Context) error {
	b := entsql.Dialect(dialect.SQLite)

	tables := []*entsql.TableBuilder{
		b.CreateTable(tableResultSnapshots).IfNotExists().
			Columns(
				entsql.Column("key").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("kind").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("data").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("updated_at").Type("INTEGER").Attr("NOT NULL"),
			).
			PrimaryKey("key"),

		b.CreateTable(tableAPIEvents).IfNotExists().
			Columns(
				entsql.Column("id").Type("INTEGER").Attr("PRIMARY KEY AUTOINCREMENT"),
				entsql.Column("sequence").Type("INTEGER").Attr("NOT NULL UNIQUE"),
				entsql.Column("timestamp").Type("INTEGER").Attr("NOT NULL"),
				entsql.Column("request_id").Type("TEXT").Attr("NOT NULL DEFAULT ''"),
				entsql.Column("method").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("endpoint").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("status_code").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("latency_ms").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("success").Type("BOOLEAN").Attr("NOT NULL"),
				entsql.Column("error_message").Type("TEXT").Attr("NOT NULL DEFAULT ''"),
			),

		b.CreateTable(tableLLMEvents).IfNotExists().
			Columns(
				entsql.Column("id").Type("INTEGER").Attr("PRIMARY KEY AUTOINCREMENT"),
				entsql.Column("sequence").Type("INTEGER").Attr("NOT NULL UNIQUE"),
				entsql.Column("timestamp").Type("INTEGER").Attr("NOT NULL"),
				entsql.Column("provider").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("model").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("purpose").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("input_tokens").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("output_tokens").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("latency_ms").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("success").Type("BOOLEAN").Attr("NOT NULL"),
				entsql.Column("error_message").Type("TEXT").Attr("NOT NULL DEFAULT ''"),
				entsql.Column("request_body").Type("TEXT").Attr("NOT NULL DEFAULT ''"),
				entsql.Column("response_body").Type("TEXT").Attr("NOT NULL DEFAULT ''"),
			),
	}

	for _, t := range tables {
		if err := s.exec(ctx, t); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
