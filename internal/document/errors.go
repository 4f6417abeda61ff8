package document

import (
	"errors"
	"fmt"
)

var (
	ErrPageOutOfRange   = errors.New("page out of range")
	ErrInvalidSelection = errors.New("invalid page selection")
	ErrInvalidAngle     = errors.New("invalid rotation angle")
	ErrEmptyDocument    = errors.New("document has no pages")
)

// RangeError reports a page number outside 1..Total.
type RangeError struct {
	Page  int
	Total int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("Page %d is out of range (1-%d)", e.Page, e.Total)
}

func (e *RangeError) Unwrap() error {
	return ErrPageOutOfRange
}

func outOfRange(n, total int) error {
	return &RangeError{Page: n, Total: total}
}
