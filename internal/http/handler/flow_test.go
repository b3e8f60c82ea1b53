package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"bookledger/internal/model"
	"bookledger/internal/repository/memory"
	"bookledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminPanelFlow(t *testing.T) {
	store := memory.New()
	ledger := service.NewLedgerService(store.Issues(), store.Books(), store.Lenders())
	app := newTestApp(Services{
		Catalog: service.NewCatalogService(store.Books()),
		Roster:  service.NewRosterService(store.Lenders()),
		Ledger:  ledger,
	})

	steps := []struct {
		path string
		form url.Values
		want int
	}{
		{"/books", url.Values{"title": {"Dune"}}, http.StatusSeeOther},
		{"/books", url.Values{"title": {"Dune"}}, http.StatusConflict},
		{"/lenders", url.Values{"name": {"Alice"}, "id": {"E1"}}, http.StatusSeeOther},
		{"/lenders", url.Values{"name": {"Bob"}, "id": {"E1"}}, http.StatusConflict},
		{"/issues", url.Values{"book": {"Dune"}, "lender": {"Alice"}, "issue_date": {"2024-01-01"}}, http.StatusSeeOther},
	}
	for _, s := range steps {
		resp, err := app.Test(postForm(s.path, s.form))
		require.NoError(t, err)
		require.Equal(t, s.want, resp.StatusCode, "POST %s %v", s.path, s.form)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/issue", nil))
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, `<option value="Dune" >Dune</option>`)
	assert.Contains(t, body, `<option value="Alice" >Alice</option>`)
	assert.NotContains(t, body, `<option value="Bob" >Bob</option>`)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ledger?q=ALI", nil))
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "<td>Dune</td><td>Alice</td><td>E1</td><td>2024-01-01</td><td>false</td>")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ledger?q=zzz", nil))
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "No issued books found.")
}

func TestMemoryStore_KeepsSubmittedValues(t *testing.T) {
	configs := map[string]fiber.Config{
		"immutable": {Immutable: true},
		"zero-copy": {},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.New()
			app := newTestAppWithConfig(Services{
				Catalog: service.NewCatalogService(store.Books()),
				Roster:  service.NewRosterService(store.Lenders()),
				Ledger:  service.NewLedgerService(store.Issues(), store.Books(), store.Lenders()),
			}, cfg)

			steps := []struct {
				path string
				form url.Values
			}{
				{"/books", url.Values{"title": {"Dune"}}},
				{"/lenders", url.Values{"name": {"Alice"}, "id": {"E1"}}},
				{"/books", url.Values{"title": {"Emma"}}},
				{"/lenders", url.Values{"name": {"Bobby"}, "id": {"E2"}}},
				{"/issues", url.Values{"book": {"Dune"}, "lender": {"Alice"}, "issue_date": {"2024-01-01"}}},
				{"/issues", url.Values{"book": {"Emma"}, "lender": {"Bobby"}, "issue_date": {"2024-02-02"}}},
			}
			for _, s := range steps {
				resp, err := app.Test(postForm(s.path, s.form))
				require.NoError(t, err)
				require.Equal(t, http.StatusSeeOther, resp.StatusCode, "POST %s %v", s.path, s.form)
			}

			books, err := store.Books().List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []model.Book{{Title: "Dune"}, {Title: "Emma"}}, books)

			lenders, err := store.Lenders().List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []model.Lender{{Name: "Alice", ID: "E1"}, {Name: "Bobby", ID: "E2"}}, lenders)

			records, err := store.Issues().Search(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []model.IssuedRecord{
				{BookTitle: "Dune", BorrowerName: "Alice", BorrowerID: "E1", IssueDate: "2024-01-01"},
				{BookTitle: "Emma", BorrowerName: "Bobby", BorrowerID: "E2", IssueDate: "2024-02-02"},
			}, records)

			// Uniqueness still holds against the stored values
			resp, err := app.Test(postForm("/books", url.Values{"title": {"Emma"}}))
			require.NoError(t, err)
			assert.Equal(t, http.StatusConflict, resp.StatusCode)
			resp, err = app.Test(postForm("/lenders", url.Values{"name": {"Carol"}, "id": {"E2"}}))
			require.NoError(t, err)
			assert.Equal(t, http.StatusConflict, resp.StatusCode)
		})
	}
}
