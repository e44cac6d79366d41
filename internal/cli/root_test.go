package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"solve", "cache", "history", "test"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCommand_Defaults(t *testing.T) {
	cmd := NewRootCommand()
	flags := cmd.PersistentFlags()

	format, err := flags.GetString("format")
	require.NoError(t, err)
	assert.Equal(t, "text", format)

	backend, err := flags.GetString("backend")
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, backend)

	envFile, err := flags.GetString("env-file")
	require.NoError(t, err)
	assert.Equal(t, ".env.local", envFile)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := runCLI(t, "cache", "stats", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestCachePath(t *testing.T) {
	assert.Equal(t, "evaluation_cache.json", (&RootOptions{Backend: BackendJSON}).cachePath())
	assert.Equal(t, "twentyfour.db", (&RootOptions{Backend: BackendSQLite}).cachePath())
	assert.Equal(t, "x.db", (&RootOptions{Backend: BackendSQLite, Cache: "x.db"}).cachePath())
}
