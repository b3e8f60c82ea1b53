package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"bookledger/internal/model"
	"bookledger/internal/service"
)

// now is the clock used for the default issue date.
var now = time.Now

type issueForm struct {
	Title      string
	Book       string
	Lender     string
	LenderName string
	LenderID   string
	IssueDate  string
}

type issueView struct {
	Page            string
	Notice          string
	Error           string
	ErrorClass      string
	Form            issueForm
	Books           []string
	Lenders         []string
	NewLenderOption string
	NewLender       bool
}

// renderIssue fetches the current book and lender lists and renders the issue page.
func renderIssue(c *fiber.Ctx, svc Services, status int, view issueView) error {
	ctx := c.UserContext()
	books, err := svc.Catalog.ListTitles(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "The ledger store is unavailable.")
	}
	lenders, err := svc.Roster.ListNames(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "The ledger store is unavailable.")
	}

	view.Page = "issue"
	view.Books = books
	view.Lenders = lenders
	view.NewLenderOption = NewLenderOption
	if view.Form.IssueDate == "" {
		view.Form.IssueDate = now().Format(model.DateLayout)
	}
	return c.Status(status).Render("templates/issue", view, layout)
}

func renderIssueError(c *fiber.Ctx, svc Services, err error, view issueView) error {
	fe := formErrorFor(err)
	view.Error = fe.Message
	view.ErrorClass = fe.Class
	return renderIssue(c, svc, fe.Status, view)
}

// IssuePage renders the add-book, issue and (with ?lender=new) add-lender forms.
func IssuePage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderIssue(c, svc, fiber.StatusOK, issueView{
			Notice:    notices[c.Query("notice")],
			NewLender: c.Query("lender") == "new",
		})
	}
}

// AddBook handles the add-book form.
func AddBook(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := c.FormValue("title")
		if _, err := svc.Catalog.AddBook(c.UserContext(), title); err != nil {
			return renderIssueError(c, svc, err, issueView{Form: issueForm{Title: title}})
		}
		return c.Redirect("/issue?notice="+noticeBookAdded, fiber.StatusSeeOther)
	}
}

// AddLender handles the add-lender form.
func AddLender(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.FormValue("name")
		id := c.FormValue("id")
		if _, err := svc.Roster.AddLender(c.UserContext(), name, id); err != nil {
			return renderIssueError(c, svc, err, issueView{
				NewLender: true,
				Form:      issueForm{LenderName: name, LenderID: id},
			})
		}
		return c.Redirect("/issue?notice="+noticeLenderAdded, fiber.StatusSeeOther)
	}
}

// IssueBook handles the issue form. The lender is chosen by name and resolved
// to the first registered lender with that name.
func IssueBook(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		book := c.FormValue("book")
		lenderName := c.FormValue("lender")
		date := c.FormValue("issue_date")

		if lenderName == NewLenderOption {
			return c.Redirect("/issue?lender=new", fiber.StatusSeeOther)
		}

		view := issueView{Form: issueForm{Book: book, Lender: lenderName, IssueDate: date}}
		switch {
		case strings.TrimSpace(book) == "":
			return renderIssueError(c, svc, &model.FieldError{Field: "book_title"}, view)
		case strings.TrimSpace(lenderName) == "":
			return renderIssueError(c, svc, &model.FieldError{Field: "borrower"}, view)
		case strings.TrimSpace(date) == "":
			return renderIssueError(c, svc, &model.FieldError{Field: "issue_date"}, view)
		}

		issuedOn, err := time.Parse(model.DateLayout, strings.TrimSpace(date))
		if err != nil {
			view.Error = "Please enter a valid issue date."
			view.ErrorClass = "error"
			return renderIssue(c, svc, fiber.StatusUnprocessableEntity, view)
		}

		ctx := c.UserContext()
		lender, err := svc.Roster.FindByName(ctx, strings.TrimSpace(lenderName))
		if err != nil {
			return renderIssueError(c, svc, err, view)
		}

		_, err = svc.Ledger.Issue(ctx, service.IssueRequest{
			BookTitle:    book,
			BorrowerName: lender.Name,
			BorrowerID:   lender.ID,
			IssueDate:    issuedOn,
		})
		if err != nil {
			return renderIssueError(c, svc, err, view)
		}
		return c.Redirect("/issue?notice="+noticeBookIssued, fiber.StatusSeeOther)
	}
}
