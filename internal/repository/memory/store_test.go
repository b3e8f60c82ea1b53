package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookledger/internal/model"
	"bookledger/internal/repository"
)

func TestBooks(t *testing.T) {
	ctx := context.Background()
	books := New().Books()

	require.NoError(t, books.Create(ctx, model.Book{Title: "Dune"}))
	assert.ErrorIs(t, books.Create(ctx, model.Book{Title: "Dune"}), repository.ErrAlreadyExists)
	require.NoError(t, books.Create(ctx, model.Book{Title: "dune"}), "titles are case-sensitive")

	list, err := books.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Book{{Title: "Dune"}, {Title: "dune"}}, list)

	_, err = books.FindByTitle(ctx, "DUNE")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLenders(t *testing.T) {
	ctx := context.Background()
	lenders := New().Lenders()

	require.NoError(t, lenders.Create(ctx, model.Lender{Name: "Alice", ID: "E1"}))
	require.NoError(t, lenders.Create(ctx, model.Lender{Name: "Alice", ID: "E2"}))
	assert.ErrorIs(t, lenders.Create(ctx, model.Lender{Name: "Bob", ID: "E1"}), repository.ErrAlreadyExists)

	l, err := lenders.FindByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "E1", l.ID, "earliest lender with the name wins")

	l, err = lenders.FindByID(ctx, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", l.Name)

	_, err = lenders.FindByName(ctx, "Bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIssues_Search(t *testing.T) {
	ctx := context.Background()
	issues := New().Issues()

	require.NoError(t, issues.Create(ctx, model.IssuedRecord{BookTitle: "Dune", BorrowerName: "Alice", BorrowerID: "E1", IssueDate: "2024-01-01"}))
	require.NoError(t, issues.Create(ctx, model.IssuedRecord{BookTitle: "Emma", BorrowerName: "Bob", BorrowerID: "E2", IssueDate: "2024-01-02"}))

	all, err := issues.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	for _, q := range []string{"dune", "DUNE", "un", "ALI"} {
		got, err := issues.Search(ctx, q)
		require.NoError(t, err)
		require.Len(t, got, 1, q)
		assert.Equal(t, "Dune", got[0].BookTitle, q)
	}

	none, err := issues.Search(ctx, "E1")
	require.NoError(t, err)
	assert.Empty(t, none, "borrower id is not searched")
}

func TestIssues_SearchUnicodeFolding(t *testing.T) {
	ctx := context.Background()
	issues := New().Issues()

	require.NoError(t, issues.Create(ctx, model.IssuedRecord{BookTitle: "ΣΊΣΥΦΟΣ", BorrowerName: "Ärne", BorrowerID: "E1", IssueDate: "2024-01-01"}))

	for _, q := range []string{"φος", "σίσ", "ärne", "ÄRNE", "Σ"} {
		got, err := issues.Search(ctx, q)
		require.NoError(t, err)
		assert.Len(t, got, 1, q)
	}

	none, err := issues.Search(ctx, "φοσσ")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		s, substr string
		want      bool
	}{
		{"Dune", "", true},
		{"Dune", "UN", true},
		{"Kelvin", "\u212Aelvin", true},
		{"ΣΊΣΥΦΟΣ", "φος", true},
		{"Emma", "emmas", false},
		{"", "a", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsFold(tt.s, tt.substr), "%q in %q", tt.substr, tt.s)
	}
}
