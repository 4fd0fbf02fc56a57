package nodetable

import (
	"errors"
	"fmt"
)

// Error variables for node table parsing.
var (
	ErrMissingHeader   = errors.New("node table has no header row")
	ErrMissingColumn   = errors.New("node table header is missing a required column")
	ErrColumnCount     = errors.New("wrong number of columns")
	ErrBadID           = errors.New("id column is not an integer")
	ErrIDMismatch      = errors.New("node id does not match row position")
	ErrBadMetadata     = errors.New("cannot decode metadata")
	ErrUnknownEncoding = errors.New("unknown metadata encoding")
)

// LineError ties a parse failure to its 1-based line number.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
