package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hostbind/internal/store"
)

const scenarioDir = "../conform/testdata/scenarios"

func TestConformCommand_Directory(t *testing.T) {
	stdout, _, err := execute(t, "conform", scenarioDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "PASS none_identity")
	assert.Contains(t, stdout, "PASS unit_conversions")
	assert.Contains(t, stdout, "2/2 scenarios passed")
}

func TestConformCommand_SingleFileJSON(t *testing.T) {
	stdout, _, err := execute(t, "conform", filepath.Join(scenarioDir, "none_identity.yaml"), "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   ConformSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Data.Passed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "none_identity", resp.Data.Scenarios[0].Scenario)
}

func TestConformCommand_Failure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wrong.yaml")
	scenario := `name: wrong
probes:
  - name: dict_is_not_none
    source: cue
    value: "{}"
    expect: { type_of: true }
`
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	stdout, _, err := execute(t, "conform", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNonConformant)
	assert.Contains(t, stdout, "FAIL wrong")
}

func TestConformCommand_MissingPath(t *testing.T) {
	stdout, _, err := execute(t, "conform", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, ErrCodeScenario)
}

func TestConformCommand_RecordsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, _, err := execute(t, "conform", scenarioDir, "--db", dbPath)
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.True(t, r.Passed)
	}

	identity, err := st.ListRuns(context.Background(), "none_identity")
	require.NoError(t, err)
	require.Len(t, identity, 1)
}

func TestConformCommand_DatabaseFromConfig(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "from-config.db")
	cfgPath := filepath.Join(dir, "hostbind.toml")
	cfg := "[store]\npath = \"" + filepath.ToSlash(dbPath) + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, _, err := execute(t, "conform", filepath.Join(scenarioDir, "unit_conversions.yaml"), "--config", cfgPath)
	require.NoError(t, err)

	_, statErr := os.Stat(dbPath)
	require.NoError(t, statErr)
}
