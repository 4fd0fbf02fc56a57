// Package nodemap builds the lookup from SLiM identifiers to tree-sequence
// node identifiers.
//
// Each node record pairs an internal node id with a metadata payload whose
// leading field is the SLiM id (see package slimmeta). [Build] decodes every
// payload and returns a [Map] keyed by SLiM id.
//
//	m, err := nodemap.Build(records)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	node, ok := m.Lookup(slimID)
//
// A malformed record aborts the whole call and no partial map is returned.
//
// # Duplicates
//
// Two records that decode to the same SLiM id collide. The default policy,
// [LastWins], keeps the record seen last. [Reject] fails with
// [ErrDuplicateID] instead.
package nodemap
