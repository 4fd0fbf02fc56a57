package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/treerec/slimids/internal/config"
	"github.com/treerec/slimids/pkg/nodemap"
)

const replPrompt = "slimids> "

// ReplCmd returns the repl command.
func ReplCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	history := fs.String("history", "", "History `file` (default ~/.slimids_history, terminals only)")

	return &Command{
		Flags: fs,
		Usage: "repl <nodes-file> [flags]",
		Short: "Interactive slim id lookups",
		Long: "Load a node table once and answer lookups line by line.\n\n" +
			"Commands:\n" +
			"  <slim-id>        print the node id\n" +
			"  node <node-id>   print the slim id\n" +
			"  count            print the number of entries\n" +
			"  help             show this list\n" +
			"  quit             leave",
		TakesNodes: true,
		Exec: func(ctx context.Context, o *IO, nodes string, _ []string) error {
			m, err := loadMap(ctx, cfg, nodes, cfg.Policy())
			if err != nil {
				return err
			}

			s := &replSession{m: m, inv: m.Invert()}

			if f, ok := o.in.(*os.File); ok && isTerminal(f.Fd()) {
				return s.runTerminal(ctx, o, historyPath(*history))
			}

			return s.runLines(ctx, o)
		},
	}
}

type replSession struct {
	m   nodemap.Map
	inv map[int64]int64
}

// errQuit ends a session without error.
var errQuit = errors.New("quit")

// eval answers one line. The reply is empty for blank input.
func (s *replSession) eval(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return "", errQuit
	case "help", "?":
		return "<slim-id> | node <node-id> | count | help | quit", nil
	case "count":
		return strconv.Itoa(len(s.m)), nil
	case "node":
		if len(fields) != 2 {
			return "usage: node <node-id>", nil
		}

		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Sprintf("invalid node id %q", fields[1]), nil
		}

		slimID, ok := s.inv[id]
		if !ok {
			return fmt.Sprintf("node %d: not found", id), nil
		}

		return fmt.Sprintf("%d\t%d", slimID, id), nil
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return fmt.Sprintf("unknown command %q (try help)", fields[0]), nil
	}

	nodeID, ok := s.m.Lookup(id)
	if !ok {
		return fmt.Sprintf("slim id %d: not found", id), nil
	}

	return fmt.Sprintf("%d\t%d", id, nodeID), nil
}

type lineResult struct {
	line string
	err  error
}

// nextLine calls read on its own goroutine and waits for it or for ctx.
// A canceled read is abandoned; read must not be called again afterwards.
func nextLine(ctx context.Context, read func() (string, error)) (string, error) {
	ch := make(chan lineResult, 1)

	go func() {
		line, err := read()
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// runLines serves piped input: no prompt, one reply per non-blank line.
func (s *replSession) runLines(ctx context.Context, o *IO) error {
	scanner := bufio.NewScanner(o.in)

	read := func() (string, error) {
		if scanner.Scan() {
			return scanner.Text(), nil
		}

		if err := scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	for {
		input, err := nextLine(ctx, read)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		reply, err := s.eval(input)
		if errors.Is(err, errQuit) {
			return nil
		}

		if reply != "" {
			o.Println(reply)
		}
	}
}

func (s *replSession) runTerminal(ctx context.Context, o *IO, history string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var out []string

		for _, c := range []string{"node ", "count", "help", "quit"} {
			if strings.HasPrefix(c, prefix) {
				out = append(out, c)
			}
		}

		return out
	})

	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}

		defer saveHistory(line, history)
	}

	o.Printf("%d entries loaded. Type 'help' for commands.\n", len(s.m))

	prompt := func() (string, error) { return line.Prompt(replPrompt) }

	for {
		input, err := nextLine(ctx, prompt)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		line.AppendHistory(input)

		reply, err := s.eval(input)
		if errors.Is(err, errQuit) {
			return nil
		}

		o.Println(reply)
	}
}

func historyPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".slimids_history")
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = line.WriteHistory(f)
	_ = f.Close()
}
