package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidManifests(t *testing.T) {
	out, err := execute(t, "validate", "testdata/suites")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ ecl_deprecations.yaml")
	assert.Contains(t, out, "manifest(s) valid")
}

func TestValidate_InvalidManifestExitsOne(t *testing.T) {
	out, err := execute(t, "validate", "testdata/invalid")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ bad_category.yaml")
}

func TestValidate_JSONOutput(t *testing.T) {
	out, err := execute(t, "validate", "testdata/invalid", "--format", "json")
	require.Error(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, "E_INVALID_MANIFEST", response.Error.Code)
}

func TestValidate_MissingDirectoryExitsTwo(t *testing.T) {
	_, err := execute(t, "validate", "testdata/nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestList_ShowsSuitesAndTargets(t *testing.T) {
	out, err := execute(t, "list", "testdata/suites")
	require.NoError(t, err)
	assert.Contains(t, out, "ecl_deprecations")
	assert.Contains(t, out, "- file_open_by_name")
	assert.Contains(t, out, "Registered targets:")
	assert.Contains(t, out, "summary.create_summary")
}

func TestReport_EmptyDatabase(t *testing.T) {
	out, err := execute(t, "report", "--db", t.TempDir()+"/empty.db")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}
