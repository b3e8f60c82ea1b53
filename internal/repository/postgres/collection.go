package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"bookledger/internal/repository"
)

const (
	colDoc = "doc"
	colSeq = "seq"
)

var (
	dialect = goqu.Dialect("postgres")
	json    = jsoniter.ConfigCompatibleWithStandardLibrary
)

// docRow is one stored JSONB document.
type docRow struct {
	Doc []byte `db:"doc"`
}

// collection stores values of T as JSONB documents in a single table.
// Rows are read back ordered by the identity column, which is insertion order.
type collection[T any] struct {
	db    *sqlx.DB
	table string
}

// field addresses a top-level text field of the stored document.
// name must be a constant; it is not escaped.
func field(name string) exp.LiteralExpression {
	return goqu.L(fmt.Sprintf("doc->>'%s'", name))
}

// containsFold matches documents whose field contains text, ignoring case.
// strpos is used instead of ILIKE so % and _ in text stay literal.
func containsFold(name, text string) exp.LiteralExpression {
	return goqu.L(fmt.Sprintf("strpos(lower(doc->>'%s'), lower(?)) > 0", name), text)
}

// insert adds the document unless a unique index on the table rejects it,
// in which case repository.ErrAlreadyExists is returned and nothing is written.
func (c collection[T]) insert(ctx context.Context, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.table, err)
	}

	q, args, err := dialect.Insert(c.table).
		Prepared(true).
		Rows(goqu.Record{colDoc: string(payload)}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", c.table, err)
	}

	res, err := c.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrAlreadyExists
	}
	return nil
}

func (c collection[T]) selectDocs(where ...exp.Expression) *goqu.SelectDataset {
	ds := dialect.From(c.table).
		Prepared(true).
		Select(colDoc).
		Order(goqu.C(colSeq).Asc())
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds
}

// find returns every matching document in insertion order.
func (c collection[T]) find(ctx context.Context, where ...exp.Expression) ([]T, error) {
	q, args, err := c.selectDocs(where...).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s select: %w", c.table, err)
	}

	var rows []docRow
	if err := c.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var v T
		if err := json.Unmarshal(r.Doc, &v); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", c.table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// findOne returns the earliest matching document or repository.ErrNotFound.
func (c collection[T]) findOne(ctx context.Context, where ...exp.Expression) (*T, error) {
	q, args, err := c.selectDocs(where...).Limit(1).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s select: %w", c.table, err)
	}

	var row docRow
	if err := c.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var v T
	if err := json.Unmarshal(row.Doc, &v); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", c.table, err)
	}
	return &v, nil
}
