package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/treerec/slimids/internal/config"
	"github.com/treerec/slimids/pkg/nodemap"
)

// entry is one map row in structured output. A slice of entries keeps the
// rows ordered by slim id, which a JSON object keyed by id would not.
type entry struct {
	SlimID int64 `json:"slim_id" yaml:"slim_id"`
	NodeID int64 `json:"node_id" yaml:"node_id"`
}

func entries(m nodemap.Map) []entry {
	ids := m.SlimIDs()

	out := make([]entry, len(ids))
	for i, id := range ids {
		out[i] = entry{SlimID: id, NodeID: m[id]}
	}

	return out
}

// render formats m in the given output format.
func render(m nodemap.Map, format string) ([]byte, error) {
	rows := entries(m)

	switch format {
	case config.FormatText:
		var buf bytes.Buffer

		for _, row := range rows {
			buf.WriteString(strconv.FormatInt(row.SlimID, 10))
			buf.WriteByte('\t')
			buf.WriteString(strconv.FormatInt(row.NodeID, 10))
			buf.WriteByte('\n')
		}

		return buf.Bytes(), nil

	case config.FormatJSON:
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}

		return append(out, '\n'), nil

	case config.FormatYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(rows); err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}

		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: format: %q", config.ErrInvalidValue, format)
	}
}
