package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bookledger/internal/database/schema"
	"bookledger/internal/model"
	"bookledger/internal/repository"
)

// LenderPostgres is a PostgreSQL implementation of repository.LenderRepository.
// Only the lender id is unique; several lenders may share a name.
type LenderPostgres struct {
	docs collection[model.Lender]
}

// NewLenderPostgres creates a new LenderPostgres repository.
func NewLenderPostgres(db *sqlx.DB) *LenderPostgres {
	return &LenderPostgres{docs: collection[model.Lender]{db: db, table: schema.LendersTable}}
}

var _ repository.LenderRepository = (*LenderPostgres)(nil)

func (r *LenderPostgres) Create(ctx context.Context, l model.Lender) error {
	return r.docs.insert(ctx, l)
}

func (r *LenderPostgres) FindByName(ctx context.Context, name string) (*model.Lender, error) {
	return r.docs.findOne(ctx, field("name").Eq(name))
}

func (r *LenderPostgres) FindByID(ctx context.Context, id string) (*model.Lender, error) {
	return r.docs.findOne(ctx, field("id").Eq(id))
}

func (r *LenderPostgres) List(ctx context.Context) ([]model.Lender, error) {
	return r.docs.find(ctx)
}
