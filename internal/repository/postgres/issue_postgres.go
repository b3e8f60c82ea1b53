package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"bookledger/internal/database/schema"
	"bookledger/internal/model"
	"bookledger/internal/repository"
)

// IssuePostgres is a PostgreSQL implementation of repository.IssueRepository.
type IssuePostgres struct {
	docs collection[model.IssuedRecord]
}

// NewIssuePostgres creates a new IssuePostgres repository.
func NewIssuePostgres(db *sqlx.DB) *IssuePostgres {
	return &IssuePostgres{docs: collection[model.IssuedRecord]{db: db, table: schema.IssuedTable}}
}

var _ repository.IssueRepository = (*IssuePostgres)(nil)

// Create appends an issue record. The collection has no unique index, so inserts always land.
func (r *IssuePostgres) Create(ctx context.Context, rec model.IssuedRecord) error {
	return r.docs.insert(ctx, rec)
}

// Search filters by a case-insensitive substring of book title or borrower name.
func (r *IssuePostgres) Search(ctx context.Context, text string) ([]model.IssuedRecord, error) {
	if text == "" {
		return r.docs.find(ctx)
	}
	return r.docs.find(ctx, goqu.Or(
		containsFold("book_title", text),
		containsFold("borrower", text),
	))
}
