package conform

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hostbind/internal/store"
)

func boolPtr(b bool) *bool { return &b }

func TestRunWithGolden_Scenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s, WithRunIDs(NewFixedGenerator("run-"+s.Name)))
			require.NoError(t, err)
			assert.True(t, result.Passed, "failures: %v", result.Failures)
			assert.Equal(t, "run-"+s.Name, result.RunID)
			assert.Len(t, result.Probes, len(s.Probes))
		})
	}
}

func TestRun_ReportsExpectationFailures(t *testing.T) {
	s := &Scenario{
		Name: "wrong_expectations",
		Probes: []Probe{
			{
				Name:   "dict",
				Source: SourceCUE,
				Value:  "{}",
				Expect: &Expect{TypeOf: boolPtr(true), TypeName: "NoneType"},
			},
		},
	}

	result, err := Run(s, WithRunIDs(NewFixedGenerator("run-1")))
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, []string{
		`probe "dict": type_of: expected true, got false`,
		`probe "dict": type_name: expected "NoneType", got "dict"`,
	}, result.Failures)
	require.Len(t, result.Probes, 1)
	assert.False(t, result.Probes[0].Passed)
}

func TestRun_NoExpectStillChecksAgreement(t *testing.T) {
	s := &Scenario{
		Name:   "bare",
		Probes: []Probe{{Name: "n", Source: SourceNone}, {Name: "i", Source: SourceCUE, Value: "7"}},
	}
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Len(t, result.RunID, 36)
}

func TestRun_UnsupportedValueIsError(t *testing.T) {
	s := &Scenario{
		Name:   "float",
		Probes: []Probe{{Name: "f", Source: SourceCUE, Value: "1.5"}},
	}
	_, err := Run(s)
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnsupported, ErrorCode(err))
	assert.Contains(t, err.Error(), `probe "f"`)
}

func TestResultRecordRoundTripsThroughStore(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/none_identity.yaml")
	require.NoError(t, err)
	result, err := Run(s, WithRunIDs(NewFixedGenerator("run-stored")))
	require.NoError(t, err)

	st, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	_, err = st.WriteRun(ctx, result.Record())
	require.NoError(t, err)

	got, err := st.ReadRun(ctx, "run-stored")
	require.NoError(t, err)
	assert.Equal(t, "none_identity", got.Scenario)
	assert.True(t, got.Passed)
	require.Len(t, got.Probes, len(result.Probes))
	assert.Equal(t, "singleton", got.Probes[0].Name)
	assert.True(t, got.Probes[0].Downcast)
	assert.Equal(t, "dict", got.Probes[2].TypeName)
	assert.False(t, got.Probes[2].Exact)
}

func TestFixedGeneratorExhausts(t *testing.T) {
	g := NewFixedGenerator("a")
	assert.Equal(t, "a", g.Generate())
	assert.PanicsWithValue(t, "FixedGenerator: all run IDs exhausted", func() { g.Generate() })
}
