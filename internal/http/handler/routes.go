package handler

import (
	"github.com/gofiber/fiber/v2"

	"bookledger/internal/service"
)

// Services bundles the use cases the pages are built on.
type Services struct {
	Catalog service.CatalogService
	Roster  service.RosterService
	Ledger  service.LedgerService
	// Archive is nil when no object store is configured.
	Archive service.ArchiveService
}

// RegisterRoutes attaches the admin pages and operational endpoints to the provided Fiber app.
// The app must be created with NewViews as its view engine.
func RegisterRoutes(app *fiber.App, db Pinger, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/issue", fiber.StatusFound)
	})

	app.Get("/issue", IssuePage(svc))
	app.Post("/books", AddBook(svc))
	app.Post("/lenders", AddLender(svc))
	app.Post("/issues", IssueBook(svc))

	app.Get("/ledger", LedgerPage(svc))
	app.Get("/ledger.csv", LedgerCSV(svc))
	app.Post("/ledger/archive", ArchiveLedger(svc))
}
