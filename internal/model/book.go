package model

import (
	"errors"
	"strings"
)

// ErrMissingField is matched by every *FieldError.
var ErrMissingField = errors.New("missing required field")

// FieldError reports a required field that was blank on submission.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return e.Field + " is required"
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMissingField
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field}
	}
	return nil
}

// Book is a catalog entry. Titles are unique and compared case-sensitively.
type Book struct {
	Title string `json:"title"`
}

// Validate checks the fields a book must carry before it is stored.
func (b Book) Validate() error {
	return required("title", b.Title)
}
