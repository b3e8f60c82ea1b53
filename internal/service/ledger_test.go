package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookledger/internal/model"
	"bookledger/internal/repository"
	"bookledger/internal/repository/memory"
	repoMocks "bookledger/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Issue(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	want := model.IssuedRecord{BookTitle: "Dune", BorrowerName: "Alice", BorrowerID: "E1", IssueDate: "2024-01-01", Returned: false}

	type repos struct {
		issues  *repoMocks.MockIssueRepository
		books   *repoMocks.MockBookRepository
		lenders *repoMocks.MockLenderRepository
	}

	tests := []struct {
		name       string
		req        IssueRequest
		setupMocks func(r repos)
		wantErr    error
	}{
		{
			name: "happy path",
			req:  IssueRequest{BookTitle: "Dune", BorrowerName: "Alice", BorrowerID: "E1", IssueDate: day},
			setupMocks: func(r repos) {
				r.books.On("FindByTitle", ctx, "Dune").Return(&model.Book{Title: "Dune"}, nil)
				r.lenders.On("FindByID", ctx, "E1").Return(&model.Lender{Name: "Alice", ID: "E1"}, nil)
				r.issues.On("Create", ctx, want).Return(nil)
			},
		},
		{
			name:       "validation - missing date",
			req:        IssueRequest{BookTitle: "Dune", BorrowerName: "Alice", BorrowerID: "E1"},
			setupMocks: func(r repos) {},
			wantErr:    model.ErrMissingField,
		},
		{
			name:       "validation - missing book",
			req:        IssueRequest{BorrowerName: "Alice", BorrowerID: "E1", IssueDate: day},
			setupMocks: func(r repos) {},
			wantErr:    model.ErrMissingField,
		},
		{
			name: "book not in catalog",
			req:  IssueRequest{BookTitle: "Emma", BorrowerName: "Alice", BorrowerID: "E1", IssueDate: day},
			setupMocks: func(r repos) {
				r.books.On("FindByTitle", ctx, "Emma").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrBookNotFound,
		},
		{
			name: "unknown lender id",
			req:  IssueRequest{BookTitle: "Dune", BorrowerName: "Alice", BorrowerID: "E9", IssueDate: day},
			setupMocks: func(r repos) {
				r.books.On("FindByTitle", ctx, "Dune").Return(&model.Book{Title: "Dune"}, nil)
				r.lenders.On("FindByID", ctx, "E9").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrLenderNotFound,
		},
		{
			name: "lender id belongs to another name",
			req:  IssueRequest{BookTitle: "Dune", BorrowerName: "Mallory", BorrowerID: "E1", IssueDate: day},
			setupMocks: func(r repos) {
				r.books.On("FindByTitle", ctx, "Dune").Return(&model.Book{Title: "Dune"}, nil)
				r.lenders.On("FindByID", ctx, "E1").Return(&model.Lender{Name: "Alice", ID: "E1"}, nil)
			},
			wantErr: ErrLenderNotFound,
		},
		{
			name: "store failure on insert",
			req:  IssueRequest{BookTitle: "Dune", BorrowerName: "Alice", BorrowerID: "E1", IssueDate: day},
			setupMocks: func(r repos) {
				r.books.On("FindByTitle", ctx, "Dune").Return(&model.Book{Title: "Dune"}, nil)
				r.lenders.On("FindByID", ctx, "E1").Return(&model.Lender{Name: "Alice", ID: "E1"}, nil)
				r.issues.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))
			},
			wantErr: ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := repos{
				issues:  new(repoMocks.MockIssueRepository),
				books:   new(repoMocks.MockBookRepository),
				lenders: new(repoMocks.MockLenderRepository),
			}
			tt.setupMocks(r)
			svc := NewLedgerService(r.issues, r.books, r.lenders)

			rec, err := svc.Issue(ctx, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rec)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, &want, rec)
			}
			r.issues.AssertExpectations(t)
			r.books.AssertExpectations(t)
			r.lenders.AssertExpectations(t)
		})
	}
}

func TestLedgerService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("nil result becomes empty", func(t *testing.T) {
		mIssues := new(repoMocks.MockIssueRepository)
		mIssues.On("Search", ctx, "").Return(nil, nil)

		recs, err := NewLedgerService(mIssues, nil, nil).Search(ctx, "")

		assert.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("store failure", func(t *testing.T) {
		mIssues := new(repoMocks.MockIssueRepository)
		mIssues.On("Search", ctx, "dune").Return(nil, errors.New("connection refused"))

		_, err := NewLedgerService(mIssues, nil, nil).Search(ctx, "dune")

		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

// Walks add book, add lender, issue, list against the in-memory store.
func TestLedgerFlow(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	catalog := NewCatalogService(store.Books())
	roster := NewRosterService(store.Lenders())
	ledger := NewLedgerService(store.Issues(), store.Books(), store.Lenders())

	_, err := catalog.AddBook(ctx, "Dune")
	require.NoError(t, err)
	_, err = catalog.AddBook(ctx, "Dune")
	assert.ErrorIs(t, err, ErrDuplicateBook)

	titles, err := catalog.ListTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, titles, "duplicate add leaves the catalog unchanged")

	_, err = roster.AddLender(ctx, "Alice", "E1")
	require.NoError(t, err)
	_, err = roster.AddLender(ctx, "Alicia", "E1")
	assert.ErrorIs(t, err, ErrDuplicateLenderID)

	lender, err := roster.FindByName(ctx, "Alice")
	require.NoError(t, err)

	_, err = ledger.Issue(ctx, IssueRequest{
		BookTitle:    "Dune",
		BorrowerName: lender.Name,
		BorrowerID:   lender.ID,
		IssueDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	all, err := ledger.Search(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []model.IssuedRecord{{
		BookTitle:    "Dune",
		BorrowerName: "Alice",
		BorrowerID:   "E1",
		IssueDate:    "2024-01-01",
		Returned:     false,
	}}, all)

	for _, q := range []string{"dune", "DUNE"} {
		got, err := ledger.Search(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, all, got, q)
	}
}
