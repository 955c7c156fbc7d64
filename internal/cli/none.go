package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
	"github.com/roach88/hostbind/internal/native"
)

// NoneInfo describes the runtime's None singleton.
type NoneInfo struct {
	TypeName      string `json:"type_name"`
	Module        string `json:"module,omitempty"`
	QualifiedName string `json:"qualified_name"`
	Address       string `json:"address"`
	RefCount      int64  `json:"refcount"`
	// Identical is true when two lookups return the same object.
	Identical bool `json:"identical"`
	// TypeConsistent is true when the singleton's type is the wrapper's type object.
	TypeConsistent bool   `json:"type_consistent"`
	Token          string `json:"token"`
}

func (i NoneInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "type:            %s\n", i.TypeName)
	module := i.Module
	if module == "" {
		module = "(none)"
	}
	fmt.Fprintf(&sb, "module:          %s\n", module)
	fmt.Fprintf(&sb, "qualified name:  %s\n", i.QualifiedName)
	fmt.Fprintf(&sb, "address:         %s\n", i.Address)
	fmt.Fprintf(&sb, "refcount:        %d\n", i.RefCount)
	fmt.Fprintf(&sb, "identical:       %t\n", i.Identical)
	fmt.Fprintf(&sb, "type consistent: %t\n", i.TypeConsistent)
	fmt.Fprintf(&sb, "token:           %s", i.Token)
	return sb.String()
}

// NewNoneCommand creates the none command.
func NewNoneCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "none",
		Short: "Describe the None singleton",
		Long: `Attach to a fresh runtime and describe its None singleton: type name,
module, address and refcount, and whether repeated lookups and the type
protocol agree on its identity.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}
			info, err := describeNone(e)
			if err != nil {
				return outputError(e.formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
			}
			return e.formatter.Success(info)
		},
	}
}

func describeNone(e *env) (NoneInfo, error) {
	rt := ffi.New(e.runtimeOptions()...)
	return gil.With(rt, func(py *gil.Token) (NoneInfo, error) {
		a := native.GetNone(py)
		b := native.GetNone(py)
		module, _ := (*native.None)(nil).TypeModule()

		info := NoneInfo{
			TypeName:       (*native.None)(nil).TypeName(),
			Module:         module,
			QualifiedName:  native.QualifiedName[native.None](),
			Address:        fmt.Sprintf("%#x", ffi.Address(a.Ptr())),
			RefCount:       a.RefCount(),
			Identical:      a.Is(b),
			TypeConsistent: a.GetType() == native.TypeObjectOf[native.None](py),
			Token:          py.ID().String(),
		}
		e.formatter.VerboseLog("attached with token %s", info.Token)
		return info, nil
	})
}
