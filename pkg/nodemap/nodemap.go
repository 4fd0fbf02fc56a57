package nodemap

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/treerec/slimids/pkg/slimmeta"
)

// Record is one row of a node table.
type Record struct {
	// ID is the internal node id assigned by the tree-sequence library.
	ID int64
	// Metadata is the raw payload written by the simulator.
	Metadata []byte
}

// Source yields node records in table order.
type Source interface {
	Nodes() iter.Seq[Record]
}

// Map resolves SLiM ids to internal node ids.
type Map map[int64]int64

// Lookup returns the node id for slimID.
func (m Map) Lookup(slimID int64) (int64, bool) {
	id, ok := m[slimID]
	return id, ok
}

// SlimIDs returns the keys in ascending order.
func (m Map) SlimIDs() []int64 {
	return slices.Sorted(maps.Keys(m))
}

// Invert returns the node id -> SLiM id direction.
func (m Map) Invert() map[int64]int64 {
	inv := make(map[int64]int64, len(m))
	for slimID, nodeID := range m {
		inv[nodeID] = slimID
	}

	return inv
}

// Build decodes every record's metadata and returns the SLiM id -> node id map.
//
// Records are consumed in order. The first malformed record aborts the call
// with a [*RecordError] wrapping the slimmeta error.
func Build(records []Record, opts ...Option) (Map, error) {
	return build(slices.Values(records), len(records), opts)
}

// BuildFrom is [Build] over a [Source].
func BuildFrom(src Source, opts ...Option) (Map, error) {
	return build(src.Nodes(), 0, opts)
}

func build(seq iter.Seq[Record], sizeHint int, opts []Option) (Map, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := make(Map, sizeHint)

	// Only tracked under Reject, to name the first holder in the error.
	var firstIndex map[int64]int

	if o.policy == Reject {
		firstIndex = make(map[int64]int, sizeHint)
	}

	idx := 0

	for rec := range seq {
		slimID, err := slimmeta.ParseID(rec.Metadata)
		if err != nil {
			return nil, &RecordError{Index: idx, NodeID: rec.ID, Err: err}
		}

		if o.policy == Reject {
			if prev, dup := m[slimID]; dup {
				return nil, &RecordError{
					Index:  idx,
					NodeID: rec.ID,
					Err: fmt.Errorf("%w %d: already held by node %d (record %d)",
						ErrDuplicateID, slimID, prev, firstIndex[slimID]),
				}
			}

			firstIndex[slimID] = idx
		}

		m[slimID] = rec.ID
		idx++
	}

	return m, nil
}
