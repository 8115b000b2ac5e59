package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nutridash/internal/config"
	"github.com/roach88/nutridash/internal/filter"
	"github.com/roach88/nutridash/internal/menu"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeIngest, "bad csv", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeIngest, resp.Error.Code)
	assert.Equal(t, "bad csv", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("all good"))
	assert.Equal(t, "all good\n", buf.String())
}

func TestOutputFormatter_TextSuccessUsesTextWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success(ImportResult{Source: "a.csv", Database: "a.db", Items: 3, Restaurants: 2}))
	assert.Equal(t, "Imported 3 items (2 restaurants) from a.csv into a.db\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	require.NoError(t, formatter.Error(ErrCodeConfig, "bad config", map[string]string{"file": "x.cue"}))
	assert.Contains(t, buf.String(), "Error [E_CONFIG]: bad config")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: tt.verbose}

			formatter.VerboseLog("loaded %d items", 3)

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Equal(t, "loaded 3 items\n", errOut.String())
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	cause := &menu.IngestError{Code: menu.ErrCodeMissingColumn, Column: "calories", Message: "column missing"}
	err := formatter.Fail(ExitCommandError, "failed to load dataset", cause)

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, menu.IsIngestError(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeIngest, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "failed to load dataset")
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeIngest, errorCode(fmt.Errorf("load: %w", &menu.IngestError{Code: menu.ErrCodeNotNumeric})))
	assert.Equal(t, ErrCodeConfig, errorCode(&config.Error{File: "x.cue", Message: "bad"}))
	assert.Equal(t, ErrCodeConfig, errorCode(errNoDataset))
	assert.Equal(t, ErrCodeInput, errorCode(fmt.Errorf("reject input: %w", &filter.CriteriaError{Input: "protein"})))
	assert.Equal(t, ErrCodeInternal, errorCode(errors.New("boom")))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "failed"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
