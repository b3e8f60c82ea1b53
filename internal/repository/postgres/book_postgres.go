package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bookledger/internal/database/schema"
	"bookledger/internal/model"
	"bookledger/internal/repository"
)

// BookPostgres is a PostgreSQL implementation of repository.BookRepository.
// Title uniqueness comes from the uq_books_title expression index.
type BookPostgres struct {
	docs collection[model.Book]
}

// NewBookPostgres creates a new BookPostgres repository.
func NewBookPostgres(db *sqlx.DB) *BookPostgres {
	return &BookPostgres{docs: collection[model.Book]{db: db, table: schema.BooksTable}}
}

var _ repository.BookRepository = (*BookPostgres)(nil)

// Create inserts a book document.
func (r *BookPostgres) Create(ctx context.Context, b model.Book) error {
	return r.docs.insert(ctx, b)
}

// FindByTitle fetches a book by exact title.
func (r *BookPostgres) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	return r.docs.findOne(ctx, field("title").Eq(title))
}

// List returns the whole catalog.
func (r *BookPostgres) List(ctx context.Context) ([]model.Book, error) {
	return r.docs.find(ctx)
}
