package conform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/none_identity.yaml")
	require.NoError(t, err)

	assert.Equal(t, "none_identity", s.Name)
	require.NotEmpty(t, s.Probes)
	first := s.Probes[0]
	assert.Equal(t, SourceNone, first.Source)
	require.NotNil(t, first.Expect)
	require.NotNil(t, first.Expect.Exact)
	assert.True(t, *first.Expect.Exact)
	assert.Equal(t, "NoneType", first.Expect.TypeName)
}

func TestLoadScenario_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"unknown_field", "name: x\nprobes: [{name: a, source: none}]\nbogus: 1\n", ErrCodeParse},
		{"no_name", "probes: [{name: a, source: none}]\n", ErrCodeInvalid},
		{"no_probes", "name: x\n", ErrCodeInvalid},
		{"bad_source", "name: x\nprobes: [{name: a, source: wat}]\n", ErrCodeInvalid},
		{"cue_without_value", "name: x\nprobes: [{name: a, source: cue}]\n", ErrCodeInvalid},
		{"value_on_none", "name: x\nprobes: [{name: a, source: none, value: 'null'}]\n", ErrCodeInvalid},
		{"duplicate_probe", "name: x\nprobes: [{name: a, source: none}, {name: a, source: none}]\n", ErrCodeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, dir, tt.name+".yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Equal(t, tt.code, ErrorCode(err))
		})
	}
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
}

func TestLoadScenarios_Empty(t *testing.T) {
	_, err := LoadScenarios(t.TempDir())
	assert.Equal(t, ErrCodeNoFiles, ErrorCode(err))
}

func TestLoadScenarios_Sorted(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "b.yaml", "name: second\nprobes: [{name: a, source: none}]\n")
	writeScenario(t, dir, "a.yaml", "name: first\nprobes: [{name: a, source: none}]\n")
	writeScenario(t, dir, "notes.txt", "ignored")

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)
}
