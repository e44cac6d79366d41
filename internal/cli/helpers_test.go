package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const script4468 = `
propose:
  "4,4,6,8": |
    1. 4 * 6 = 24 (left: 4 8 24)
    2. 4 + 4 = 8 (left: 6 8 8)
  "1,1,1,1": |
    1. 1 + 1 = 2 (left: 1 1 2)
evaluate:
  "4,8,24": "24 is already here. BINGO"
default_judgment: IMPOSSIBLE
`

// runCLI executes the root command with args and returns stdout, stderr
// and the command error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// isolatedFlags points the env file and cache at a temp dir.
func isolatedFlags(t *testing.T, dir string) []string {
	t.Helper()
	return []string{
		"--env-file", filepath.Join(dir, "missing.env"),
		"--cache", filepath.Join(dir, "evaluation_cache.json"),
	}
}
