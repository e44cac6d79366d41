package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: cli_success
description: Solves 4 4 6 8
numbers: [4, 4, 6, 8]
oracle:
  propose:
    "4,4,6,8": "1. 4 * 6 = 24 (left: 4 8 24)"
  evaluate:
    "4,8,24": BINGO
expect:
  success: true
  steps: ["4 * 6"]
`

const failingScenario = `
name: cli_wrong
description: Expects a solution that the script never allows
numbers: [1, 1, 1, 1]
oracle:
  default_judgment: IMPOSSIBLE
expect:
  success: true
`

func TestTestCommand_MissingArgs(t *testing.T) {
	_, _, err := runCLI(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_NonExistentDir(t *testing.T) {
	_, _, err := runCLI(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommand_NoScenarios(t *testing.T) {
	out, _, err := runCLI(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_PassAndFail(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cli_success.yaml", passingScenario)
	writeFile(t, dir, "cli_wrong.yaml", failingScenario)

	out, _, err := runCLI(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✓ cli_success")
	assert.Contains(t, out, "✗ cli_wrong")
	assert.Contains(t, out, "success true, got false")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cli_success.yaml", passingScenario)
	writeFile(t, dir, "cli_wrong.yaml", failingScenario)

	out, _, err := runCLI(t, "test", dir, "--filter", "*success")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_UpdateThenCompareGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cli_success.yaml", passingScenario)

	out, _, err := runCLI(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ cli_success (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "cli_success.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), `{"numbers":[4,4,6,8],"run_id":"test-run-default","scenario":"cli_success"}`)
	assert.Contains(t, string(golden), `{"final":[4,8,24],"reason":"BINGO","steps":["4 * 6"],"success":true}`)

	_, _, err = runCLI(t, "test", dir)
	require.NoError(t, err, "unchanged run should match its golden file")

	writeFile(t, dir, "golden/cli_success.golden", "stale\n")
	out, _, err = runCLI(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\nunknown_field: 1\n")

	out, _, err := runCLI(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cli_success.yaml", passingScenario)
	writeFile(t, dir, "cli_wrong.yaml", failingScenario)

	out, _, err := runCLI(t, "test", dir, "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestTestCommand_HarnessTestdata(t *testing.T) {
	out, _, err := runCLI(t, "test", filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("s", "golden", "a.golden"), goldenFilePath(filepath.Join("s", "a.yaml")))
}
