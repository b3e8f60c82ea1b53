package mocks

import (
	"context"

	"bookledger/internal/model"
	"bookledger/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListTitles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogService) AddBook(ctx context.Context, title string) (*model.Book, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) ListNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRosterService) AddLender(ctx context.Context, name, id string) (*model.Lender, error) {
	args := m.Called(ctx, name, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lender), args.Error(1)
}

func (m *MockRosterService) FindByName(ctx context.Context, name string) (*model.Lender, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lender), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Issue(ctx context.Context, req service.IssueRequest) (*model.IssuedRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IssuedRecord), args.Error(1)
}

func (m *MockLedgerService) Search(ctx context.Context, text string) ([]model.IssuedRecord, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssuedRecord), args.Error(1)
}

type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) Archive(ctx context.Context, text string) (*service.ArchiveResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}
