package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateBook     = errors.New("book already exists")
	ErrDuplicateLenderID = errors.New("lender id already exists")
	ErrBookNotFound      = errors.New("book not found")
	ErrLenderNotFound    = errors.New("lender not found")
	// ErrStoreUnavailable wraps any store failure that is not a uniqueness or lookup miss.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
