package model

// DateLayout is the ISO calendar date format issue dates are stored in.
const DateLayout = "2006-01-02"

// IssuedRecord is one loan of a book to a lender.
// Returned is written as false when the record is created and nothing updates it.
type IssuedRecord struct {
	BookTitle    string `json:"book_title"`
	BorrowerName string `json:"borrower"`
	BorrowerID   string `json:"borrower_id"`
	IssueDate    string `json:"issue_date"`
	Returned     bool   `json:"returned"`
}

// Validate checks the fields a record must carry before it is stored.
func (r IssuedRecord) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"book_title", r.BookTitle},
		{"borrower", r.BorrowerName},
		{"borrower_id", r.BorrowerID},
		{"issue_date", r.IssueDate},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}
