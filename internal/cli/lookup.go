package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/treerec/slimids/internal/config"
)

// ErrSlimIDRequired is returned when lookup gets no ids.
var ErrSlimIDRequired = errors.New("at least one slim id is required")

// LookupCmd returns the lookup command.
func LookupCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	reverse := fs.BoolP("reverse", "r", false, "Treat arguments as node ids and print their slim ids")

	return &Command{
		Flags: fs,
		Usage: "lookup <nodes-file> <id>... [flags]",
		Short: "Resolve slim ids to node ids",
		Long: "Print <slim-id> <node-id> for each given slim id.\n" +
			"Ids missing from the table are reported as warnings and make the exit code 1.",
		TakesNodes: true,
		Exec: func(ctx context.Context, io *IO, nodes string, args []string) error {
			return execLookup(ctx, io, cfg, nodes, args, *reverse)
		},
	}
}

func execLookup(ctx context.Context, io *IO, cfg *config.Config, nodes string, args []string, reverse bool) error {
	if len(args) == 0 {
		return ErrSlimIDRequired
	}

	ids := make([]int64, 0, len(args))

	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id < 0 {
			return fmt.Errorf("invalid id %q: must be a non-negative integer", arg)
		}

		ids = append(ids, id)
	}

	m, err := loadMap(ctx, cfg, nodes, cfg.Policy())
	if err != nil {
		return err
	}

	table := map[int64]int64(m)
	if reverse {
		table = m.Invert()
	}

	for _, id := range ids {
		other, ok := table[id]
		if !ok {
			if reverse {
				io.Warn(fmt.Sprintf("node id %d not found", id))
			} else {
				io.Warn(fmt.Sprintf("slim id %d not found", id))
			}

			continue
		}

		if reverse {
			io.Printf("%d\t%d\n", other, id)
		} else {
			io.Printf("%d\t%d\n", id, other)
		}
	}

	return nil
}
