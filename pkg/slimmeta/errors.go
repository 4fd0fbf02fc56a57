package slimmeta

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Parse] and [ParseID].
//
// They are always wrapped in a [*ParseError]; use [errors.Is] to classify.
var (
	// ErrInvalidUTF8 indicates the metadata bytes are not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("slimmeta: metadata is not valid utf-8")

	// ErrEmpty indicates the metadata holds no text at all.
	ErrEmpty = errors.New("slimmeta: metadata is empty")

	// ErrInvalidID indicates the leading field is not a base-10 unsigned integer.
	ErrInvalidID = errors.New("slimmeta: leading field is not an unsigned integer")

	// ErrIDOutOfRange indicates the leading field does not fit in an int64.
	ErrIDOutOfRange = errors.New("slimmeta: leading field out of range")
)

// ParseError describes why a metadata payload was rejected.
type ParseError struct {
	// Input is the offending payload, decoded lossily for display.
	Input string
	// Offset is the byte offset of the first offending byte.
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", e.Err, e.Offset, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
