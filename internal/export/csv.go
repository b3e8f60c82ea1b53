package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"bookledger/internal/model"
)

// ContentType is the media type of WriteCSV output.
const ContentType = "text/csv; charset=utf-8"

// Header lists the ledger columns in display order.
var Header = []string{"Book", "Borrower", "ID", "Issued On", "Returned"}

// Row renders one record in Header order.
func Row(r model.IssuedRecord) []string {
	return []string{r.BookTitle, r.BorrowerName, r.BorrowerID, r.IssueDate, strconv.FormatBool(r.Returned)}
}

// WriteCSV writes the header followed by one line per record.
func WriteCSV(w io.Writer, records []model.IssuedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
