package conform

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
	"github.com/roach88/hostbind/internal/native"
)

// ProbeResult is what one probe observed.
type ProbeResult struct {
	Name     string `json:"name"`
	Source   string `json:"source"`
	TypeName string `json:"type_name"`
	Repr     string `json:"repr"`
	TypeOf   bool   `json:"type_of"`
	Exact    bool   `json:"exact"`
	Downcast bool   `json:"downcast"`
	Passed   bool   `json:"passed"`
}

// Result is the outcome of one scenario run.
type Result struct {
	RunID    string        `json:"run_id"`
	Scenario string        `json:"scenario"`
	Passed   bool          `json:"passed"`
	Probes   []ProbeResult `json:"probes"`
	Failures []string      `json:"failures,omitempty"`

	// Trace holds one deterministic line per probe, for golden comparison.
	Trace []string `json:"-"`
}

func (r *Result) fail(format string, args ...any) {
	r.Passed = false
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	ids    RunIDGenerator
	logger *slog.Logger
	rtOpts []ffi.Option
}

// WithRunIDs sets the run ID generator. Default: UUIDv7Generator.
func WithRunIDs(g RunIDGenerator) Option {
	return func(c *runConfig) { c.ids = g }
}

// WithLogger sets the logger for the run and its runtime. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// WithRuntimeOptions passes options to the fresh runtime each run creates.
func WithRuntimeOptions(opts ...ffi.Option) Option {
	return func(c *runConfig) { c.rtOpts = append(c.rtOpts, opts...) }
}

// Run executes a scenario against a fresh runtime.
//
// Probe failures are reported in the Result; the error return is reserved
// for probes whose value cannot be built at all.
func Run(s *Scenario, opts ...Option) (*Result, error) {
	cfg := &runConfig{
		ids:    UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rtOpts := append([]ffi.Option{ffi.WithLogger(cfg.logger)}, cfg.rtOpts...)
	rt := ffi.New(rtOpts...)

	result := &Result{
		RunID:    cfg.ids.Generate(),
		Scenario: s.Name,
		Passed:   true,
	}
	logger := cfg.logger.With("run_id", result.RunID, "scenario", s.Name)
	logger.Info("scenario starting", "probes", len(s.Probes))

	before, err := noneRefCount(rt)
	if err != nil {
		return nil, err
	}

	err = gil.Attach(rt, func(py *gil.Token) error {
		for _, p := range s.Probes {
			pr, err := runProbe(py, p)
			if err != nil {
				return fmt.Errorf("probe %q: %w", p.Name, err)
			}
			pr.Passed = checkProbe(result, p, pr)
			result.Probes = append(result.Probes, pr)
			result.Trace = append(result.Trace, traceLine(pr))
			logger.Debug("probe evaluated", "probe", p.Name, "type", pr.TypeName, "passed", pr.Passed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	after, err := noneRefCount(rt)
	if err != nil {
		return nil, err
	}
	if after != before {
		result.fail("None refcount unbalanced: %d before, %d after", before, after)
	}

	if result.Passed {
		logger.Info("scenario passed")
	} else {
		logger.Warn("scenario failed", "failures", len(result.Failures))
	}
	return result, nil
}

func noneRefCount(rt *ffi.Runtime) (int64, error) {
	return gil.With(rt, func(py *gil.Token) (int64, error) {
		return native.GetNone(py).RefCount(), nil
	})
}

func runProbe(py *gil.Token, p Probe) (ProbeResult, error) {
	var obj native.Borrowed[native.Any]
	switch p.Source {
	case SourceNone:
		obj = native.GetNone(py).Any()
	case SourceUnitToObject:
		owned := native.Unit{}.ToObject(py)
		defer owned.Drop(py)
		obj = owned.Bind(py)
	case SourceUnitIntoObject:
		owned := native.Unit{}.IntoObject(py)
		defer owned.Drop(py)
		obj = owned.Bind(py)
	case SourceCUE:
		v, err := BuildValue(py, p.Value)
		if err != nil {
			return ProbeResult{}, err
		}
		obj = v
	default:
		return ProbeResult{}, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("unknown source %q", p.Source)}
	}

	_, downcastErr := native.Downcast[native.None](obj)
	return ProbeResult{
		Name:     p.Name,
		Source:   p.Source,
		TypeName: obj.TypeName(),
		Repr:     native.Repr(obj),
		TypeOf:   native.IsInstanceOf[native.None](obj),
		Exact:    native.IsExactInstanceOf[native.None](obj),
		Downcast: downcastErr == nil,
	}, nil
}

// checkProbe records failures for pr on result and reports whether the
// probe passed.
func checkProbe(result *Result, p Probe, pr ProbeResult) bool {
	ok := true
	fail := func(format string, args ...any) {
		ok = false
		result.fail("probe %q: "+format, append([]any{p.Name}, args...)...)
	}

	if pr.TypeOf != pr.Exact {
		fail("type_of=%t disagrees with exact=%t", pr.TypeOf, pr.Exact)
	}
	if pr.Downcast != pr.TypeOf {
		fail("downcast=%t disagrees with type_of=%t", pr.Downcast, pr.TypeOf)
	}

	e := p.Expect
	if e == nil {
		return ok
	}
	if e.TypeOf != nil && *e.TypeOf != pr.TypeOf {
		fail("type_of: expected %t, got %t", *e.TypeOf, pr.TypeOf)
	}
	if e.Exact != nil && *e.Exact != pr.Exact {
		fail("exact: expected %t, got %t", *e.Exact, pr.Exact)
	}
	if e.Downcast != nil && *e.Downcast != pr.Downcast {
		fail("downcast: expected %t, got %t", *e.Downcast, pr.Downcast)
	}
	if e.TypeName != "" && e.TypeName != pr.TypeName {
		fail("type_name: expected %q, got %q", e.TypeName, pr.TypeName)
	}
	if e.Repr != "" && e.Repr != pr.Repr {
		fail("repr: expected %q, got %q", e.Repr, pr.Repr)
	}
	return ok
}

func traceLine(pr ProbeResult) string {
	downcast := "ok"
	if !pr.Downcast {
		downcast = "DOWNCAST"
	}
	return fmt.Sprintf("probe %s source=%s type=%s repr=%s type_of=%t exact=%t downcast=%s",
		pr.Name, pr.Source, pr.TypeName, pr.Repr, pr.TypeOf, pr.Exact, downcast)
}
