package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeUnsolved, "1 of 1 set(s) unsolved", map[string]int{"unsolved": 1})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeUnsolved, resp.Error.Code)
	assert.Equal(t, "1 of 1 set(s) unsolved", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	require.NoError(t, formatter.Success("all good"))
	require.NoError(t, formatter.Error(ErrCodeCommand, "bad flag", "details here"))

	assert.Contains(t, buf.String(), "all good")
	assert.Contains(t, buf.String(), "Error [E_COMMAND]: bad flag")
	assert.Contains(t, buf.String(), "Details: details here")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	quiet := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}
	quiet.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	loud := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	loud.VerboseLog("[%d] %s", 1, "visit")
	assert.Equal(t, "[1] visit\n", errOut.String())
	assert.Empty(t, out.String(), "verbose logs must not corrupt JSON output")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "unsolved"))))
}

func TestExitError_Message(t *testing.T) {
	err := WrapExitError(ExitFailure, "solve 4 4 6 8 aborted", errors.New("timeout"))
	assert.Equal(t, "solve 4 4 6 8 aborted: timeout", err.Error())
	assert.Equal(t, "timeout", errors.Unwrap(err).Error())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeCommand, ErrorCode(errors.New("unknown flag")))
	assert.Equal(t, ErrCodeCommand, ErrorCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ErrCodeUnsolved, ErrorCode(NewExitError(ExitFailure, "1 of 1 set(s) unsolved")))
	assert.Equal(t, ErrCodeAborted, ErrorCode(WrapExitError(ExitFailure, "aborted", errors.New("boom"))))
}
