package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/hostbind/internal/config"
	"github.com/roach88/hostbind/internal/ffi"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the hostbind CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hostbind",
		Short: "hostbind - typed views over a foreign runtime",
		Long:  "Inspect and conformance-test the None singleton wrapper of the hostbind foreign runtime binding.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to TOML config file")

	cmd.AddCommand(NewNoneCommand(opts))
	cmd.AddCommand(NewProbeCommand(opts))
	cmd.AddCommand(NewConformCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// env is what every command needs after flags and config are resolved.
type env struct {
	cfg       config.Config
	logger    *slog.Logger
	formatter *OutputFormatter
}

// setup resolves config and logging for cmd. Config errors are reported
// through the formatter and returned as ExitErrors.
func (opts *RootOptions) setup(cmd *cobra.Command) (*env, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, outputError(formatter, ExitCommandError, ErrCodeConfig, err.Error(), nil)
		}
		cfg = loaded
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, outputError(formatter, ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(formatter.GetErrWriter(), &slog.HandlerOptions{Level: level}))

	return &env{cfg: cfg, logger: logger, formatter: formatter}, nil
}

// runtimeOptions returns the ffi options implied by the config.
func (e *env) runtimeOptions() []ffi.Option {
	return []ffi.Option{
		ffi.WithLogger(e.logger),
		ffi.WithRefTrace(e.cfg.Runtime.TraceRefCounts),
	}
}
