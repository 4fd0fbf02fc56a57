package slimmeta

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Separator splits metadata fields.
const Separator = ','

// Metadata is the decoded form of a node's metadata payload.
type Metadata struct {
	// SlimID is the simulator-side identifier from the leading field.
	SlimID int64
	// Fields holds everything after the leading field, split on [Separator].
	// Nil when the payload is a bare id.
	Fields []string
}

// Parse decodes raw and returns its typed form.
//
// It fails with [ErrInvalidUTF8], [ErrEmpty], [ErrInvalidID] or
// [ErrIDOutOfRange], each wrapped in a [*ParseError].
func Parse(raw []byte) (Metadata, error) {
	if !utf8.Valid(raw) {
		return Metadata{}, &ParseError{
			Input:  strings.ToValidUTF8(string(raw), string(utf8.RuneError)),
			Offset: firstInvalidUTF8(raw),
			Err:    ErrInvalidUTF8,
		}
	}

	text := string(raw)
	if text == "" {
		return Metadata{}, &ParseError{Input: text, Err: ErrEmpty}
	}

	head, tail, hasTail := strings.Cut(text, string(Separator))

	id, off, err := parseUint(head)
	if err != nil {
		return Metadata{}, &ParseError{Input: text, Offset: off, Err: err}
	}

	meta := Metadata{SlimID: id}
	if hasTail {
		meta.Fields = strings.Split(tail, string(Separator))
	}

	return meta, nil
}

// ParseID is [Parse] without the trailing fields.
func ParseID(raw []byte) (int64, error) {
	meta, err := Parse(raw)
	if err != nil {
		return 0, err
	}

	return meta.SlimID, nil
}

// parseUint accepts 1*DIGIT only: no sign, no whitespace, no base prefix.
// On failure it returns the offset of the first offending byte.
func parseUint(s string) (int64, int, error) {
	if s == "" {
		return 0, 0, ErrInvalidID
	}

	var n int64

	for i := range len(s) {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, i, ErrInvalidID
		}

		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0, i, ErrIDOutOfRange
		}

		n = n*10 + d
	}

	return n, 0, nil
}

func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}

		i += size
	}

	return len(b)
}
