package nodemap

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID indicates two records share a SLiM id under [Reject].
	ErrDuplicateID = errors.New("nodemap: duplicate slim id")

	// ErrUnknownPolicy indicates [ParsePolicy] got an unrecognised name.
	ErrUnknownPolicy = errors.New("nodemap: unknown duplicate policy")
)

// RecordError reports which input record stopped a build.
type RecordError struct {
	// Index is the position of the record in the input sequence.
	Index int
	// NodeID is the record's internal node id.
	NodeID int64
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (node %d): %v", e.Index, e.NodeID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
