package handler

// NewLenderOption is the lender select value that opens the add-lender form.
const NewLenderOption = "__new__"

const (
	noticeBookAdded   = "book_added"
	noticeLenderAdded = "lender_added"
	noticeBookIssued  = "book_issued"
)

// notices maps the ?notice= code set by a redirect after a successful write.
var notices = map[string]string{
	noticeBookAdded:   "Book added successfully.",
	noticeLenderAdded: "Lender added successfully.",
	noticeBookIssued:  "Book issued successfully.",
}
