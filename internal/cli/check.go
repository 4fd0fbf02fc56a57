package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/treerec/slimids/internal/config"
	"github.com/treerec/slimids/pkg/nodemap"
)

// CheckCmd returns the check command.
func CheckCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("check", flag.ContinueOnError),
		Usage: "check <nodes-file>",
		Short: "Validate metadata and slim id uniqueness",
		Long: "Parse every node's metadata and fail on the first malformed record\n" +
			"or duplicate slim id, regardless of the configured duplicate policy.",
		TakesNodes: true,
		Exec: func(ctx context.Context, io *IO, nodes string, _ []string) error {
			m, err := loadMap(ctx, cfg, nodes, nodemap.Reject)
			if err != nil {
				return err
			}

			io.Println("ok:", len(m), "nodes, slim ids unique")

			return nil
		},
	}
}
