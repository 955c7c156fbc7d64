package conform

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceText renders the run's trace: a header line followed by one line
// per probe. It contains no run IDs or addresses, so it is stable across
// runs.
func (r *Result) TraceText() []byte {
	var sb strings.Builder
	sb.WriteString("scenario " + r.Scenario + "\n")
	for _, line := range r.Trace {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/conform -update
func RunWithGolden(t *testing.T, s *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(s, opts...)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, s.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, result.TraceText())
}
