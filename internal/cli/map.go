package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/treerec/slimids/internal/config"
	"github.com/treerec/slimids/internal/ctxlog"
)

// MapCmd returns the map command.
func MapCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("map", flag.ContinueOnError)
	format := fs.String("format", "", "Output format: text, json or yaml (default from config)")
	outPath := fs.StringP("out", "o", "", "Write to `file` atomically instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "map <nodes-file> [flags]",
		Short: "Print the slim id -> node id map",
		Long: "Read a node table and print one entry per node, ordered by slim id.\n" +
			"Text output is tab-separated: <slim-id> <node-id>.",
		TakesNodes: true,
		Exec: func(ctx context.Context, io *IO, nodes string, _ []string) error {
			return execMap(ctx, io, cfg, nodes, *format, *outPath)
		},
	}
}

func execMap(ctx context.Context, io *IO, cfg *config.Config, nodes, format, outPath string) error {
	if format == "" {
		format = cfg.Format
	}

	m, err := loadMap(ctx, cfg, nodes, cfg.Policy())
	if err != nil {
		return err
	}

	data, err := render(m, format)
	if err != nil {
		return err
	}

	return emit(ctx, io, cfg, outPath, data, len(m))
}

// emit prints data, or writes it atomically to outPath when set and reports
// how many entries went there.
func emit(ctx context.Context, io *IO, cfg *config.Config, outPath string, data []byte, entries int) error {
	if outPath == "" {
		io.Printf("%s", data)

		return nil
	}

	dest := resolvePath(cfg, outPath)

	if err := atomic.WriteFile(dest, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	ctxlog.FromContext(ctx).WithField("path", dest).WithField("entries", entries).Debug("output written")

	io.Println("Wrote", entries, "entries to", outPath)

	return nil
}
