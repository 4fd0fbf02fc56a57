// Package slimmeta parses the per-node metadata text that SLiM writes into a
// tree sequence's node table.
//
// The accepted grammar is
//
//	metadata = id *( "," field )
//	id       = 1*DIGIT
//	field    = *( any UTF-8 except "," )
//
// The leading id is the SLiM-side identifier of the genome the node stands
// for. Trailing fields are returned verbatim and carry no meaning here.
//
// # Basic Usage
//
//	meta, err := slimmeta.Parse(node.Metadata)
//	if err != nil {
//	    // errors.Is(err, slimmeta.ErrInvalidID) etc.
//	}
//	fmt.Println(meta.SlimID)
package slimmeta
