package cli

import (
	"bytes"
	"context"
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(takesNodes bool, got *[]string) *Command {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.Bool("fast", false, "Go fast")

	return &Command{
		Flags:      fs,
		Usage:      "demo <nodes-file> [flags]",
		Short:      "Demo command",
		TakesNodes: takesNodes,
		Exec: func(_ context.Context, _ *IO, nodes string, args []string) error {
			*got = append([]string{nodes}, args...)
			return nil
		},
	}
}

func Test_Command_Splits_Nodes_Argument_When_TakesNodes(t *testing.T) {
	t.Parallel()

	var got []string

	var stdout, stderr bytes.Buffer

	cmd := newTestCommand(true, &got)
	code := cmd.Run(context.Background(), NewIO(nil, &stdout, &stderr), []string{"nodes.txt", "--fast", "7"})

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Equal(t, []string{"nodes.txt", "7"}, got)
	assert.Equal(t, "demo", cmd.Name())
}

func Test_Command_Rejects_Missing_Nodes_Before_Exec(t *testing.T) {
	t.Parallel()

	var got []string

	var stdout, stderr bytes.Buffer

	code := newTestCommand(true, &got).Run(context.Background(), NewIO(nil, &stdout, &stderr), nil)

	assert.Equal(t, 1, code)
	assert.Nil(t, got, "exec must not run")
	assert.Contains(t, stderr.String(), ErrNodesFileRequired.Error())
}

func Test_Command_Flag_Error_Keeps_Stdout_Empty(t *testing.T) {
	t.Parallel()

	var got []string

	var stdout, stderr bytes.Buffer

	code := newTestCommand(false, &got).Run(context.Background(), NewIO(nil, &stdout, &stderr), []string{"--slow"})

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "unknown flag: --slow")
	assert.Contains(t, stderr.String(), "Usage: slimids demo")
	assert.Contains(t, stderr.String(), "--fast")
}

func Test_Command_Help_Goes_To_Stdout(t *testing.T) {
	t.Parallel()

	var got []string

	var stdout, stderr bytes.Buffer

	code := newTestCommand(true, &got).Run(context.Background(), NewIO(nil, &stdout, &stderr), []string{"-h"})

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	assert.Equal(t, "Usage: slimids demo <nodes-file> [flags]\n\nDemo command\n\nFlags:\n      --fast   Go fast\n", stdout.String())
}
