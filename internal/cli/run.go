// Package cli implements the slimids command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/treerec/slimids/internal/config"
	"github.com/treerec/slimids/internal/ctxlog"
)

// ErrUnknownCommand is returned for an unrecognised subcommand.
var ErrUnknownCommand = errors.New("unknown command")

type globalFlags struct {
	workDir    string
	configPath string
	encoding   string
	duplicates string
	verbose    bool
	help       bool
}

func newGlobalFlagSet(flags *globalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("slimids", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&flags.workDir, "cwd", "C", "", "Run as if started in `dir`")
	fs.StringVarP(&flags.configPath, "config", "c", "", "Use specified config `file`")
	fs.StringVar(&flags.encoding, "encoding", "", "Metadata column encoding: base64 or text")
	fs.StringVar(&flags.duplicates, "duplicates", "", "Duplicate slim id policy: last-wins or reject")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug details to stderr")
	fs.BoolVarP(&flags.help, "help", "h", false, "Show help")

	return fs
}

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. A value received on it cancels the running command.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	o := NewIO(in, out, errOut)

	var flags globalFlags

	globalFS := newGlobalFlagSet(&flags)

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	if err := globalFS.Parse(rest); err != nil {
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		printUsage(errOut, globalFS, nil)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		Overrides:       config.Config{Encoding: flags.encoding, Duplicates: flags.duplicates},
		Env:             env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	commands := allCommands(&cfg)

	cmdArgs := globalFS.Args()
	if flags.help || len(cmdArgs) == 0 {
		printUsage(out, globalFS, commands)

		return 0
	}

	var cmd *Command

	for _, c := range commands {
		if c.Name() == cmdArgs[0] {
			cmd = c

			break
		}
	}

	if cmd == nil {
		o.ErrPrintln("error:", fmt.Errorf("%w: %s", ErrUnknownCommand, cmdArgs[0]))
		o.ErrPrintln()
		printUsage(errOut, globalFS, commands)

		return 1
	}

	logger := ctxlog.New(o.errOut, flags.verbose)
	logger.WithField("cwd", cfg.EffectiveCwd).
		WithField("encoding", cfg.Encoding).
		WithField("duplicates", cfg.Duplicates).
		Debug("config resolved")

	ctx, cancel := context.WithCancel(ctxlog.WithLogger(context.Background(), logger))
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case sig := <-sigCh:
				logger.WithField("signal", sig.String()).Debug("interrupted")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if code := cmd.Run(ctx, o, cmdArgs[1:]); code != 0 {
		return code
	}

	return o.Finish()
}

func allCommands(cfg *config.Config) []*Command {
	return []*Command{
		MapCmd(cfg),
		LookupCmd(cfg),
		CheckCmd(cfg),
		NormalizeCmd(cfg),
		ReplCmd(cfg),
		PrintConfigCmd(cfg),
	}
}

func printUsage(w io.Writer, globalFS *flag.FlagSet, commands []*Command) {
	var b strings.Builder

	b.WriteString("slimids - map SLiM ids to tree-sequence node ids\n\n")
	b.WriteString("Usage: slimids [flags] <command> [args]\n\n")
	b.WriteString("Global flags:\n")
	b.WriteString(globalFS.FlagUsages())

	if len(commands) > 0 {
		b.WriteString("\nCommands:\n")

		for _, c := range commands {
			b.WriteString(c.HelpLine())
			b.WriteByte('\n')
		}
	}

	_, _ = io.WriteString(w, b.String())
}
