package mocks

import (
	"context"

	"bookledger/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, b model.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

type MockLenderRepository struct {
	mock.Mock
}

func (m *MockLenderRepository) Create(ctx context.Context, l model.Lender) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLenderRepository) FindByName(ctx context.Context, name string) (*model.Lender, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lender), args.Error(1)
}

func (m *MockLenderRepository) FindByID(ctx context.Context, id string) (*model.Lender, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lender), args.Error(1)
}

func (m *MockLenderRepository) List(ctx context.Context) ([]model.Lender, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lender), args.Error(1)
}

type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) Create(ctx context.Context, r model.IssuedRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockIssueRepository) Search(ctx context.Context, text string) ([]model.IssuedRecord, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssuedRecord), args.Error(1)
}
