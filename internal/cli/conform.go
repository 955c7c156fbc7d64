package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hostbind/internal/conform"
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/store"
)

// ConformOptions holds flags for the conform command.
type ConformOptions struct {
	*RootOptions
	Database string
}

// ConformSummary is the conform command's output.
type ConformSummary struct {
	Passed    bool              `json:"passed"`
	Scenarios []*conform.Result `json:"scenarios"`
}

func (s ConformSummary) String() string {
	var sb strings.Builder
	for _, r := range s.Scenarios {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "%s %s (%d probes)\n", status, r.Scenario, len(r.Probes))
		for _, f := range r.Failures {
			fmt.Fprintf(&sb, "    %s\n", f)
		}
	}
	passed := 0
	for _, r := range s.Scenarios {
		if r.Passed {
			passed++
		}
	}
	fmt.Fprintf(&sb, "%d/%d scenarios passed", passed, len(s.Scenarios))
	return sb.String()
}

// NewConformCommand creates the conform command.
func NewConformCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConformOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "conform <scenario-file|dir>",
		Short: "Run conformance scenarios",
		Long: `Run YAML conformance scenarios against the None wrapper.

A directory runs every *.yaml file in it, in name order. With --db (or
store.path in the config file) results are appended to a SQLite database.

Exit codes:
  0  all scenarios passed
  1  one or more scenarios failed
  2  command error`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConform(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to record results in")

	return cmd
}

func runConform(opts *ConformOptions, path string, cmd *cobra.Command) error {
	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	scenarios, err := loadScenarios(path)
	if err != nil {
		return outputError(e.formatter, ExitCommandError, ErrCodeScenario, err.Error(), nil)
	}
	e.formatter.VerboseLog("Loaded %d scenario(s) from %s", len(scenarios), path)

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = e.cfg.Store.Path
	}
	var st *store.Store
	if dbPath != "" {
		st, err = store.Open(dbPath)
		if err != nil {
			return outputError(e.formatter, ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				e.logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	runOpts := []conform.Option{
		conform.WithLogger(e.logger),
		conform.WithRuntimeOptions(ffi.WithRefTrace(e.cfg.Runtime.TraceRefCounts)),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summary := ConformSummary{Passed: true}
	for _, s := range scenarios {
		result, err := conform.Run(s, runOpts...)
		if err != nil {
			return outputError(e.formatter, ExitCommandError, ErrCodeScenario, fmt.Sprintf("scenario %q: %v", s.Name, err), nil)
		}
		if st != nil {
			seq, err := st.WriteRun(ctx, result.Record())
			if err != nil {
				return outputError(e.formatter, ExitCommandError, ErrCodeStore, err.Error(), nil)
			}
			e.formatter.VerboseLog("Recorded run %s as seq %d", result.RunID, seq)
		}
		summary.Passed = summary.Passed && result.Passed
		summary.Scenarios = append(summary.Scenarios, result)
	}

	if err := e.formatter.Success(summary); err != nil {
		return err
	}
	if !summary.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: scenarios failed", ErrCodeNonConformant))
	}
	return nil
}

func loadScenarios(path string) ([]*conform.Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scenario path not found: %s", path)
	}
	if info.IsDir() {
		return conform.LoadScenarios(path)
	}
	s, err := conform.LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return []*conform.Scenario{s}, nil
}
