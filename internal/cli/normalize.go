package cli

import (
	"bytes"
	"context"

	flag "github.com/spf13/pflag"

	"github.com/treerec/slimids/internal/config"
	"github.com/treerec/slimids/internal/ctxlog"
	"github.com/treerec/slimids/internal/nodetable"
)

// NormalizeCmd returns the normalize command.
func NormalizeCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	to := fs.String("to", string(nodetable.EncodingText), "Metadata encoding to write: base64 or text")
	outPath := fs.StringP("out", "o", "", "Write to `file` atomically instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "normalize <nodes-file> [flags]",
		Short: "Rewrite a node table as id and metadata columns",
		Long: "Read a node table (base64 or text metadata, optionally .xz) and write\n" +
			"only its id and metadata columns in the --to encoding. Text output\n" +
			"is readable with --encoding text.",
		TakesNodes: true,
		Exec: func(ctx context.Context, io *IO, nodes string, _ []string) error {
			enc, err := nodetable.ParseEncoding(*to)
			if err != nil {
				return err
			}

			table, err := nodetable.Open(resolvePath(cfg, nodes), cfg.TableOptions())
			if err != nil {
				return err
			}

			ctxlog.FromContext(ctx).WithField("nodes", table.Len()).WithField("to", string(enc)).Debug("normalizing")

			var buf bytes.Buffer

			if err := nodetable.Write(&buf, table.Records(), nodetable.Options{Encoding: enc}); err != nil {
				return err
			}

			return emit(ctx, io, cfg, *outPath, buf.Bytes(), table.Len())
		},
	}
}
