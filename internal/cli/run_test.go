package cli_test

import (
	"bytes"
	"testing"

	"github.com/treerec/slimids/internal/cli"
)

func Test_Bare_Command_Prints_Usage(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	exitCode := cli.Run(nil, &stdout, &stderr, []string{"slimids", "--cwd", t.TempDir()}, nil, nil)

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stderr.String(), ""; got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stdout.String(), "slimids - map SLiM ids to tree-sequence node ids")
	cli.AssertContains(t, stdout.String(), "--cwd")
	cli.AssertContains(t, stdout.String(), "map <nodes-file>")
	cli.AssertContains(t, stdout.String(), "print-config")
}

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--invalid-flag", "map")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")
	cli.AssertContains(t, stderr, "Global flags:")
	cli.AssertContains(t, stderr, "--duplicates")
}

func Test_Unknown_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("frobnicate")

	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Invalid_Policy_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("--duplicates=first-wins", "print-config")

	cli.AssertContains(t, stderr, "duplicates")
	cli.AssertContains(t, stderr, "first-wins")
}

func Test_Command_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("map", "--help")

	cli.AssertContains(t, stdout, "Usage: slimids map <nodes-file>")
	cli.AssertContains(t, stdout, "--format")
	cli.AssertContains(t, stdout, "--out")
}

func Test_Print_Config_Shows_Sources(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, `"encoding": "base64"`)
	cli.AssertContains(t, stdout, `"duplicates": "last-wins"`)
	cli.AssertContains(t, stdout, "(defaults only)")

	c.WriteFile(".slimids.json", `{
		// project default
		"format": "yaml",
	}`)

	stdout = c.MustRun("print-config")
	cli.AssertContains(t, stdout, `"format": "yaml"`)
	cli.AssertContains(t, stdout, "project_config=")
	cli.AssertNotContains(t, stdout, "(defaults only)")
}
