package vtt

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTimeString = errors.New("invalid time string")
	ErrInvalidItem       = errors.New("invalid cue")
	ErrInvalidFile       = errors.New("invalid vtt file")
	ErrUncoercible       = errors.New("value cannot be coerced to a time")
)

// ParseError reports a cue block that failed to parse. Line is the 0-based
// index of the line that ended the block.
type ParseError struct {
	Line  int
	Block string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind names the most specific sentinel behind err.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTimeString):
		return "InvalidTimeString"
	case errors.Is(err, ErrInvalidItem):
		return "InvalidItem"
	case errors.Is(err, ErrInvalidFile):
		return "InvalidFile"
	default:
		return "Error"
	}
}
