// Package nodetable reads tree-sequence node tables in the tab-separated text
// form written by tskit's dump_text.
//
// Only the columns needed to pair a node id with its metadata are read; the
// rest (is_sample, time, population, individual) are skipped.
package nodetable

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/treerec/slimids/pkg/nodemap"
)

// Column names recognised in the header row.
const (
	ColumnID       = "id"
	ColumnMetadata = "metadata"
)

// maxLineSize bounds a single row. Metadata of a node is small; this only
// guards against reading a binary file as text.
const maxLineSize = 4 << 20

// Encoding is how the metadata column is stored.
type Encoding string

const (
	// EncodingBase64 is tskit's default for dump_text.
	EncodingBase64 Encoding = "base64"
	// EncodingText stores metadata verbatim; it must not contain tabs or newlines.
	EncodingText Encoding = "text"
)

// ParseEncoding validates s as an [Encoding].
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(s); e {
	case EncodingBase64, EncodingText:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q (want base64 or text)", ErrUnknownEncoding, s)
	}
}

// Options configures [Read] and [Open].
type Options struct {
	Encoding Encoding
}

// Table is the (id, metadata) projection of a node table.
type Table struct {
	records []nodemap.Record
}

// Len returns the number of nodes.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the rows in table order. The slice is shared.
func (t *Table) Records() []nodemap.Record {
	return t.records
}

// Nodes yields the rows in table order.
func (t *Table) Nodes() iter.Seq[nodemap.Record] {
	return slices.Values(t.records)
}

// Open reads the node table at path. Files ending in ".xz" are decompressed.
func Open(path string, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open node table: %w", err)
	}
	defer file.Close()

	var r io.Reader = file

	if strings.HasSuffix(path, ".xz") {
		xr, xzErr := xz.NewReader(bufio.NewReader(file))
		if xzErr != nil {
			return nil, fmt.Errorf("open node table %s: %w", path, xzErr)
		}

		r = xr
	}

	table, err := Read(r, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return table, nil
}

// Read parses a node table from r.
//
// The first non-blank line is the header. A metadata column is required. When
// an id column is present its value must equal the row's position, since
// tskit assigns node ids by row.
func Read(r io.Reader, opts Options) (*Table, error) {
	if opts.Encoding == "" {
		opts.Encoding = EncodingBase64
	}

	if _, err := ParseEncoding(string(opts.Encoding)); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var hdr header

	seen := false
	table := &Table{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !seen {
			parsed, err := parseHeader(line)
			if err != nil {
				return nil, &LineError{Line: lineNo, Err: err}
			}

			hdr = parsed
			seen = true

			continue
		}

		row, err := hdr.parseRow(line, int64(table.Len()), opts.Encoding)
		if err != nil {
			return nil, &LineError{Line: lineNo, Err: err}
		}

		table.records = append(table.records, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read node table: %w", err)
	}

	if !seen {
		return nil, ErrMissingHeader
	}

	return table, nil
}

type header struct {
	columns int
	idCol   int // -1 when absent
	metaCol int
}

func parseHeader(line string) (header, error) {
	names := strings.Split(line, "\t")

	h := header{columns: len(names), idCol: -1, metaCol: -1}

	for i, name := range names {
		switch strings.TrimSpace(name) {
		case ColumnID:
			h.idCol = i
		case ColumnMetadata:
			h.metaCol = i
		}
	}

	if h.metaCol < 0 {
		return header{}, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnMetadata)
	}

	return h, nil
}

func (h header) parseRow(line string, row int64, enc Encoding) (nodemap.Record, error) {
	fields := strings.Split(line, "\t")

	// dump_text leaves the trailing metadata cell empty for nodes without
	// metadata, and some writers then drop the final tab.
	if len(fields) == h.columns-1 && h.metaCol == h.columns-1 {
		fields = append(fields, "")
	}

	if len(fields) != h.columns {
		return nodemap.Record{}, fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(fields), h.columns)
	}

	if h.idCol >= 0 {
		id, err := strconv.ParseInt(strings.TrimSpace(fields[h.idCol]), 10, 64)
		if err != nil {
			return nodemap.Record{}, fmt.Errorf("%w: %q", ErrBadID, fields[h.idCol])
		}

		if id != row {
			return nodemap.Record{}, fmt.Errorf("%w: id %d at row %d", ErrIDMismatch, id, row)
		}
	}

	meta, err := decodeMetadata(fields[h.metaCol], enc)
	if err != nil {
		return nodemap.Record{}, err
	}

	return nodemap.Record{ID: row, Metadata: meta}, nil
}

func decodeMetadata(cell string, enc Encoding) ([]byte, error) {
	if enc == EncodingText {
		return []byte(cell), nil
	}

	meta, err := base64.StdEncoding.DecodeString(strings.TrimSpace(cell))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadMetadata, err)
	}

	return meta, nil
}

// Write emits records in dump_text form with only id and metadata columns.
// It is the inverse of [Read] for the columns Read keeps.
func Write(w io.Writer, records []nodemap.Record, opts Options) error {
	if opts.Encoding == "" {
		opts.Encoding = EncodingBase64
	}

	var buf bytes.Buffer

	buf.WriteString(ColumnID + "\t" + ColumnMetadata + "\n")

	for i, r := range records {
		if r.ID != int64(i) {
			return fmt.Errorf("%w: id %d at row %d", ErrIDMismatch, r.ID, i)
		}

		cell := string(r.Metadata)
		if opts.Encoding == EncodingBase64 {
			cell = base64.StdEncoding.EncodeToString(r.Metadata)
		} else if strings.ContainsAny(cell, "\t\n\r") {
			return fmt.Errorf("%w: row %d holds a tab or newline", ErrBadMetadata, i)
		}

		buf.WriteString(strconv.Itoa(i))
		buf.WriteByte('\t')
		buf.WriteString(cell)
		buf.WriteByte('\n')
	}

	_, err := w.Write(buf.Bytes())

	return err
}
