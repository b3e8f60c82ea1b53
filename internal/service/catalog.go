package service

import (
	"context"
	"errors"
	"strings"

	"bookledger/internal/model"
	"bookledger/internal/repository"
)

// CatalogService manages the book catalog.
type CatalogService interface {
	// ListTitles returns every book title in insertion order.
	ListTitles(ctx context.Context) ([]string, error)

	// AddBook stores a new book. A blank title fails with model.ErrMissingField,
	// a title already in the catalog fails with ErrDuplicateBook.
	AddBook(ctx context.Context, title string) (*model.Book, error)
}

type catalogService struct {
	books repository.BookRepository
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(books repository.BookRepository) CatalogService {
	return &catalogService{books: books}
}

func (s *catalogService) ListTitles(ctx context.Context) ([]string, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	titles := make([]string, 0, len(books))
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	return titles, nil
}

func (s *catalogService) AddBook(ctx context.Context, title string) (*model.Book, error) {
	b := model.Book{Title: strings.TrimSpace(title)}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.books.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrDuplicateBook
		}
		return nil, storeErr(err)
	}
	return &b, nil
}
