package pathdata

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for empty or whitespace-only path data.
	ErrEmpty = errors.New("empty path data")
	// ErrSyntax is returned for malformed or incomplete path data.
	ErrSyntax = errors.New("invalid path data")
	// ErrRange is returned when a number does not fit in a float64.
	ErrRange = errors.New("numeric value out of range")
)

// ParseError describes why path data could not be parsed. It unwraps to
// one of ErrEmpty, ErrSyntax or ErrRange.
type ParseError struct {
	Kind      error  // ErrEmpty, ErrSyntax or ErrRange
	Msg       string // human readable description
	Offset    int    // byte offset at which parsing stopped
	Remaining string // unconsumed input at Offset
}

func (e *ParseError) Error() string {
	if e.Remaining == "" {
		return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %q", e.Msg, e.Offset, e.Remaining)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
