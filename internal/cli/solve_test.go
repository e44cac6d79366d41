package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/twentyfour/internal/ir"
)

func TestSolve_Text(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "oracle.yaml", script4468)

	args := append([]string{"solve", "4", "4", "6", "8", "--script", script}, isolatedFlags(t, dir)...)
	out, _, err := runCLI(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ 4 4 6 8")
	assert.Contains(t, out, "1. 4 * 6")
	assert.Contains(t, out, "left: 4 8 24")
	assert.Contains(t, out, "judgment: 24 is already here. BINGO")

	data, err := os.ReadFile(filepath.Join(dir, "evaluation_cache.json"))
	require.NoError(t, err, "cache file should be written")
	assert.Contains(t, string(data), `"4,8,24"`)
}

func TestSolve_JSON(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "oracle.yaml", script4468)

	args := append([]string{"solve", "--set", "4 4 6 8", "--script", script, "--format", "json"}, isolatedFlags(t, dir)...)
	out, _, err := runCLI(t, args...)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   []SolveOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, ir.Multiset{4, 4, 6, 8}, resp.Data[0].Numbers)
	assert.True(t, resp.Data[0].Result.Success)
	assert.Equal(t, []string{"4 * 6"}, resp.Data[0].Result.Steps)
	assert.NotEmpty(t, resp.Data[0].Result.RunID)
}

func TestSolve_UnsolvedSetExitsWithFailure(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "oracle.yaml", script4468)

	args := append([]string{"solve", "4", "4", "6", "8", "--set", "1 1 1 1", "--script", script}, isolatedFlags(t, dir)...)
	out, _, err := runCLI(t, args...)
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 2 set(s) unsolved")
	assert.Contains(t, out, "✓ 4 4 6 8")
	assert.Contains(t, out, "✗ 1 1 1 1: No solution found")
}

func TestSolve_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "oracle.yaml", script4468)
	metrics := filepath.Join(dir, "twentyfour.prom")

	args := append([]string{"solve", "4", "4", "6", "8", "--script", script, "--metrics-file", metrics}, isolatedFlags(t, dir)...)
	_, _, err := runCLI(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `twentyfour_solve_total{outcome="success"}`)
	assert.Contains(t, text, `twentyfour_oracle_calls_total{op="evaluate"}`)
	assert.Contains(t, text, "twentyfour_cache_entries")
}

func TestSolve_MetricsFileWrittenOnFailure(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "oracle.yaml", script4468)
	metrics := filepath.Join(dir, "twentyfour.prom")

	args := append([]string{"solve", "1", "1", "1", "1", "--script", script, "--metrics-file", metrics}, isolatedFlags(t, dir)...)
	_, _, err := runCLI(t, args...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `twentyfour_solve_total{outcome="exhausted"}`)
}

func TestSolve_CacheReusedAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "oracle.yaml", script4468)

	args := append([]string{"solve", "4", "4", "6", "8", "--script", script}, isolatedFlags(t, dir)...)
	_, _, err := runCLI(t, args...)
	require.NoError(t, err)

	// Second run with an oracle that would fail every evaluation
	failing := writeFile(t, dir, "failing.yaml", `
propose:
  "4,4,6,8": "1. 4 * 6 = 24 (left: 4 8 24)"
fail:
  evaluate: ["4,8,24"]
`)
	args = append([]string{"solve", "4", "4", "6", "8", "--script", failing}, isolatedFlags(t, dir)...)
	out, _, err := runCLI(t, args...)
	require.NoError(t, err, "cached judgment should be served without calling the oracle")
	assert.Contains(t, out, "✓ 4 4 6 8")
}

func TestSolve_OracleFailureAborts(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "oracle.yaml", `
fail:
  propose: ["4,4,6,8"]
`)

	args := append([]string{"solve", "4", "4", "6", "8", "--script", script}, isolatedFlags(t, dir)...)
	_, _, err := runCLI(t, args...)
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, ErrCodeAborted, ErrorCode(err))
	assert.Contains(t, err.Error(), "solve 4 4 6 8 aborted")

	_, statErr := os.Stat(filepath.Join(dir, "evaluation_cache.json"))
	assert.True(t, os.IsNotExist(statErr), "aborted search must not write the cache")
}

func TestSolve_CommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no numbers", []string{"solve"}, "no numbers given"},
		{"not an integer", []string{"solve", "4", "x"}, `"x" is not an integer`},
		{"empty set", []string{"solve", "--set", "  "}, "empty number set"},
		{"missing script", []string{"solve", "1", "--script", "/nonexistent/oracle.yaml"}, "failed to load oracle script"},
		{"missing api key", []string{"solve", "1"}, "api key is required"},
		{"bad format", []string{"solve", "1", "--format", "xml"}, "invalid format"},
		{"bad backend", []string{"solve", "1", "--backend", "redis"}, "invalid backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			dir := t.TempDir()

			_, _, err := runCLI(t, append(tt.args, isolatedFlags(t, dir)...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSolve_VerboseTrace(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "oracle.yaml", script4468)

	args := append([]string{"solve", "4", "4", "6", "8", "--script", script, "--verbose"}, isolatedFlags(t, dir)...)
	_, errOut, err := runCLI(t, args...)
	require.NoError(t, err)

	assert.Contains(t, errOut, "[1] visit 4,4,6,8")
	assert.Contains(t, errOut, "success 4,8,24")
}

func TestParseSets(t *testing.T) {
	sets, err := parseSets([]string{"4", "4", "6", "8"}, []string{"1 2  3 4", "24"})
	require.NoError(t, err)
	assert.Equal(t, []ir.Multiset{{4, 4, 6, 8}, {1, 2, 3, 4}, {24}}, sets)

	_, err = parseSets(nil, nil)
	assert.Error(t, err)

	_, err = parseSets(nil, []string{"1 two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `--set "1 two"`)
}

func TestVerdictLine(t *testing.T) {
	assert.Equal(t, "BINGO", verdictLine("4 * 6 = 24\n  BINGO \n"))
	assert.Equal(t, "IMPOSSIBLE", verdictLine("IMPOSSIBLE"))
}
