package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"bookledger/internal/export"
	"bookledger/internal/model"
)

type ledgerView struct {
	Page           string
	Notice         string
	ArchiveURL     string
	Error          string
	Query          string
	Records        []model.IssuedRecord
	ArchiveEnabled bool
}

func renderLedger(c *fiber.Ctx, svc Services, status int, view ledgerView) error {
	records, err := svc.Ledger.Search(c.UserContext(), view.Query)
	if err != nil {
		fe := formErrorFor(err)
		view.Error = fe.Message
		status = fe.Status
	}
	view.Page = "ledger"
	view.Records = records
	view.ArchiveEnabled = svc.Archive != nil
	return c.Status(status).Render("templates/ledger", view, layout)
}

// LedgerPage renders the issued-books table filtered by ?q=.
func LedgerPage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderLedger(c, svc, fiber.StatusOK, ledgerView{Query: c.Query("q")})
	}
}

// LedgerCSV streams the listing LedgerPage would show as a CSV attachment.
func LedgerCSV(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := svc.Ledger.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "The ledger store is unavailable.")
		}
		c.Attachment("ledger.csv")
		c.Set(fiber.HeaderContentType, export.ContentType)
		return export.WriteCSV(c.Response().BodyWriter(), records)
	}
}

// ArchiveLedger writes the filtered listing to object storage and shows a download link.
func ArchiveLedger(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view := ledgerView{Query: c.FormValue("q")}
		if svc.Archive == nil {
			view.Error = "Archiving is not configured."
			return renderLedger(c, svc, fiber.StatusServiceUnavailable, view)
		}

		res, err := svc.Archive.Archive(c.UserContext(), view.Query)
		if err != nil {
			view.Error = "Could not archive the ledger. Please try again."
			return renderLedger(c, svc, fiber.StatusServiceUnavailable, view)
		}
		view.Notice = fmt.Sprintf("Archived %d records.", res.Records)
		view.ArchiveURL = res.URL
		return renderLedger(c, svc, fiber.StatusOK, view)
	}
}
