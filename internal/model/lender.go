package model

// Lender is a person registered to borrow books.
// ID is an external identifier (student or employee number) and is the only unique field.
type Lender struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Validate checks the fields a lender must carry before it is stored.
func (l Lender) Validate() error {
	if err := required("name", l.Name); err != nil {
		return err
	}
	return required("id", l.ID)
}
