package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one slimids subcommand.
type Command struct {
	// Flags holds the command's own flags. Global flags are parsed by Run
	// before the command is chosen.
	Flags *flag.FlagSet

	// Usage follows "slimids" in help output; its first word is the name.
	Usage string

	// Short is the line shown in the command listing.
	Short string

	// Long is shown by "slimids <cmd> --help". Short is used when empty.
	Long string

	// TakesNodes marks commands whose first positional argument is a node
	// table. Run rejects a missing one with ErrNodesFileRequired before Exec.
	TakesNodes bool

	// Exec runs the command after flags are parsed. When TakesNodes is set,
	// nodes is args[0] and args holds the rest.
	Exec func(ctx context.Context, o *IO, nodes string, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the entry for the global command listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-34s %s", c.Usage, c.Short)
}

// writeHelp renders the full help text to w.
func (c *Command) writeHelp(w io.Writer) {
	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Usage: slimids %s\n\n%s\n", c.Usage, desc)

	if c.Flags.HasFlags() {
		b.WriteString("\nFlags:\n")
		b.WriteString(c.Flags.FlagUsages())
	}

	_, _ = io.WriteString(w, b.String())
}

// Run parses flags and executes the command. Returns exit code.
//
// --help prints to stdout and exits 0. A flag error prints the error and the
// help text to stderr and exits 1, leaving stdout empty for pipelines.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(io.Discard)

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.writeHelp(o.out)
			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.writeHelp(o.errOut)

		return 1
	}

	rest := c.Flags.Args()

	var nodes string

	if c.TakesNodes {
		if len(rest) == 0 {
			o.ErrPrintln("error:", ErrNodesFileRequired)
			return 1
		}

		nodes, rest = rest[0], rest[1:]
	}

	if err := c.Exec(ctx, o, nodes, rest); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
