package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hostbind/internal/conform"
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
	"github.com/roach88/hostbind/internal/native"
)

// ProbeReport is the result of probing one value against None.
type ProbeReport struct {
	Value         string `json:"value"`
	TypeName      string `json:"type_name"`
	Repr          string `json:"repr"`
	IsTypeOf      bool   `json:"is_type_of"`
	IsExactTypeOf bool   `json:"is_exact_type_of"`
	Downcast      bool   `json:"downcast"`
	DowncastError string `json:"downcast_error,omitempty"`
}

func (r ProbeReport) String() string {
	downcast := "ok"
	if !r.Downcast {
		downcast = r.DowncastError
	}
	return fmt.Sprintf("value:            %s\ntype:             %s\nrepr:             %s\nis_type_of:       %t\nis_exact_type_of: %t\ndowncast:         %s",
		r.Value, r.TypeName, r.Repr, r.IsTypeOf, r.IsExactTypeOf, downcast)
}

// NewProbeCommand creates the probe command.
func NewProbeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <cue-literal>",
		Short: "Check a value against the None type",
		Long: `Build a foreign object from a CUE literal and report whether the None
type protocol accepts it.

Examples:
  hostbind probe null
  hostbind probe '{}'
  hostbind probe '{a: null}' --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}
			report, err := probeValue(e, args[0])
			if err != nil {
				return outputError(e.formatter, ExitCommandError, ErrCodeInvalidValue, err.Error(), nil)
			}
			return e.formatter.Success(report)
		},
	}
}

func probeValue(e *env, expr string) (ProbeReport, error) {
	rt := ffi.New(e.runtimeOptions()...)
	return gil.With(rt, func(py *gil.Token) (ProbeReport, error) {
		obj, err := conform.BuildValue(py, expr)
		if err != nil {
			return ProbeReport{}, err
		}

		report := ProbeReport{
			Value:         expr,
			TypeName:      obj.TypeName(),
			Repr:          native.Repr(obj),
			IsTypeOf:      native.IsInstanceOf[native.None](obj),
			IsExactTypeOf: native.IsExactInstanceOf[native.None](obj),
		}
		if _, err := native.Downcast[native.None](obj); err != nil {
			report.DowncastError = err.Error()
		} else {
			report.Downcast = true
		}
		return report, nil
	})
}
