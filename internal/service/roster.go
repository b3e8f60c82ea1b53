package service

import (
	"context"
	"errors"
	"strings"

	"bookledger/internal/model"
	"bookledger/internal/repository"
)

// RosterService manages the lenders allowed to borrow books.
type RosterService interface {
	// ListNames returns every lender name in insertion order. Names may repeat.
	ListNames(ctx context.Context) ([]string, error)

	// AddLender stores a new lender. Blank name or id fails with model.ErrMissingField,
	// an id already on the roster fails with ErrDuplicateLenderID.
	AddLender(ctx context.Context, name, id string) (*model.Lender, error)

	// FindByName returns the first registered lender with exactly this name,
	// or ErrLenderNotFound.
	FindByName(ctx context.Context, name string) (*model.Lender, error)
}

type rosterService struct {
	lenders repository.LenderRepository
}

// NewRosterService constructs a new RosterService.
func NewRosterService(lenders repository.LenderRepository) RosterService {
	return &rosterService{lenders: lenders}
}

func (s *rosterService) ListNames(ctx context.Context) ([]string, error) {
	lenders, err := s.lenders.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	names := make([]string, 0, len(lenders))
	for _, l := range lenders {
		names = append(names, l.Name)
	}
	return names, nil
}

func (s *rosterService) AddLender(ctx context.Context, name, id string) (*model.Lender, error) {
	l := model.Lender{Name: strings.TrimSpace(name), ID: strings.TrimSpace(id)}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.lenders.Create(ctx, l); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrDuplicateLenderID
		}
		return nil, storeErr(err)
	}
	return &l, nil
}

func (s *rosterService) FindByName(ctx context.Context, name string) (*model.Lender, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &model.FieldError{Field: "name"}
	}
	l, err := s.lenders.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLenderNotFound
		}
		return nil, storeErr(err)
	}
	return l, nil
}
