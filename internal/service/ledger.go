package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookledger/internal/model"
	"bookledger/internal/repository"
)

// IssueRequest carries the fields of a new loan.
type IssueRequest struct {
	BookTitle    string
	BorrowerName string
	BorrowerID   string
	IssueDate    time.Time
}

// LedgerService records loans and queries the ledger.
type LedgerService interface {
	// Issue records a loan with Returned=false. The book must be in the catalog and
	// BorrowerID must belong to a lender named BorrowerName at the time of the call.
	Issue(ctx context.Context, req IssueRequest) (*model.IssuedRecord, error)

	// Search returns ledger records in insertion order. Empty text returns all of them;
	// otherwise the book title or borrower name must contain text, ignoring case.
	Search(ctx context.Context, text string) ([]model.IssuedRecord, error)
}

type ledgerService struct {
	issues  repository.IssueRepository
	books   repository.BookRepository
	lenders repository.LenderRepository
}

// NewLedgerService constructs a new LedgerService.
func NewLedgerService(issues repository.IssueRepository, books repository.BookRepository, lenders repository.LenderRepository) LedgerService {
	return &ledgerService{issues: issues, books: books, lenders: lenders}
}

func (s *ledgerService) Issue(ctx context.Context, req IssueRequest) (*model.IssuedRecord, error) {
	rec := model.IssuedRecord{
		BookTitle:    strings.TrimSpace(req.BookTitle),
		BorrowerName: strings.TrimSpace(req.BorrowerName),
		BorrowerID:   strings.TrimSpace(req.BorrowerID),
		Returned:     false,
	}
	if !req.IssueDate.IsZero() {
		rec.IssueDate = req.IssueDate.Format(model.DateLayout)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.books.FindByTitle(ctx, rec.BookTitle); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, storeErr(err)
	}

	lender, err := s.lenders.FindByID(ctx, rec.BorrowerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLenderNotFound
		}
		return nil, storeErr(err)
	}
	if lender.Name != rec.BorrowerName {
		return nil, fmt.Errorf("%w: id %s is registered to another name", ErrLenderNotFound, rec.BorrowerID)
	}

	if err := s.issues.Create(ctx, rec); err != nil {
		return nil, storeErr(err)
	}
	return &rec, nil
}

func (s *ledgerService) Search(ctx context.Context, text string) ([]model.IssuedRecord, error) {
	records, err := s.issues.Search(ctx, text)
	if err != nil {
		return nil, storeErr(err)
	}
	if records == nil {
		records = []model.IssuedRecord{}
	}
	return records, nil
}
