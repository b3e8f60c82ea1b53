package repository

import (
	"context"
	"errors"

	"bookledger/internal/model"
)

// Package repository contains the collection access contracts.
// Implementations live in subpackages (postgres, memory) inside this directory.

var (
	// ErrAlreadyExists is returned when an insert would break a uniqueness rule of the collection.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")
)

// BookRepository accesses the books collection. Books are never updated or deleted.
type BookRepository interface {
	// Create inserts a book, or returns ErrAlreadyExists when the title is taken.
	Create(ctx context.Context, b model.Book) error
	// FindByTitle returns the book with exactly this title.
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	// List returns all books in insertion order.
	List(ctx context.Context) ([]model.Book, error)
}

// LenderRepository accesses the lenders collection.
type LenderRepository interface {
	// Create inserts a lender, or returns ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, l model.Lender) error
	// FindByName returns the earliest inserted lender with this name.
	FindByName(ctx context.Context, name string) (*model.Lender, error)
	// FindByID returns the lender with this id.
	FindByID(ctx context.Context, id string) (*model.Lender, error)
	// List returns all lenders in insertion order.
	List(ctx context.Context) ([]model.Lender, error)
}

// IssueRepository accesses the issued_books collection.
type IssueRepository interface {
	// Create appends a record.
	Create(ctx context.Context, r model.IssuedRecord) error
	// Search returns records in insertion order. An empty text matches everything;
	// otherwise book title or borrower name must contain text, ignoring case.
	Search(ctx context.Context, text string) ([]model.IssuedRecord, error)
}
