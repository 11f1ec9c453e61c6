package cli_test

import (
	"bytes"
	"testing"

	"github.com/ff6editor/pluginvet/internal/adapters/inbound/cli"
)

// execute runs the root command with an empty config directory and returns
// what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config", t.TempDir()))
	err := root.Execute()
	return stdout.String(), err
}
