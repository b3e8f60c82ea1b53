package schema

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Collection table names. Every collection is a table of JSONB documents
// ordered by an identity column, so listings keep insertion order.
const (
	BooksTable   = "books"
	LendersTable = "lenders"
	IssuedTable  = "issued_books"
)

type step struct {
	Name string
	SQL  string
}

var steps = []step{
	{
		Name: "create_table_books",
		SQL: `CREATE TABLE IF NOT EXISTS books (
  seq        BIGINT      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  doc        JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_unique_index_books_title",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_books_title ON books ((doc->>'title'));`,
	},
	{
		Name: "create_table_lenders",
		SQL: `CREATE TABLE IF NOT EXISTS lenders (
  seq        BIGINT      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  doc        JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_unique_index_lenders_id",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_lenders_id ON lenders ((doc->>'id'));`,
	},
	{
		Name: "create_index_lenders_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_lenders_name ON lenders ((doc->>'name'));`,
	},
	{
		Name: "create_table_issued_books",
		SQL: `CREATE TABLE IF NOT EXISTS issued_books (
  seq        BIGINT      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  doc        JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// EnsureCollections creates the collection tables and their indexes when the
// issued_books sentinel table is missing. It never alters existing tables.
func EnsureCollections(ctx context.Context, db *sql.DB, log zerolog.Logger, target string) error {
	start := time.Now()
	l := log.With().Str("component", "database").Str("db_target", target).Logger()

	l.Info().Str("event", "db_schema_check").Str("status", "starting").Send()

	var exists bool
	query := "SELECT to_regclass('public.issued_books') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		l.Error().Err(err).
			Str("event", "db_schema_failed").
			Str("status", "error").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		l.Info().
			Str("event", "db_schema_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("collections already exist, skipping bootstrap")
		return nil
	}

	for _, s := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			l.Error().Err(err).
				Str("event", "db_schema_failed").
				Str("status", "error").
				Str("schema_step", s.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("schema step %s failed: %w", s.Name, err)
		}

		l.Info().
			Str("event", "db_schema_step").
			Str("status", "success").
			Str("schema_step", s.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	l.Info().
		Str("event", "db_schema_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
