package state

import (
	"errors"
	"fmt"
)

var (
	ErrNoYear          = errors.New("state: no year loaded")
	ErrLoadSuperseded  = errors.New("state: load superseded by a newer request")
	ErrNotFound        = errors.New("state: not found")
	ErrDuplicateID     = errors.New("state: duplicate id")
	ErrDuplicateEvent  = errors.New("state: duplicate event")
	ErrUnknownLabel    = errors.New("state: unknown label")
	ErrInvalidRange    = errors.New("state: end date before start date")
	ErrInvalidDate     = errors.New("state: invalid date")
	ErrDateOutsideYear = errors.New("state: date outside the loaded year")
	ErrInvalidColor    = errors.New("state: invalid color")
	ErrInvalidPriority = errors.New("state: invalid priority")
	ErrInvalidOrder    = errors.New("state: order does not match the current items")
	ErrInvalidCell     = errors.New("state: invalid cell")
	ErrEmptyText       = errors.New("state: text required")
)

// ImportError reports a document that could not be accepted from storage or
// a backup. The state is left as it was.
type ImportError struct {
	File string
	Err  error
}

func (e *ImportError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("state: import: %v", e.Err)
	}
	return fmt.Sprintf("state: import %s: %v", e.File, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
