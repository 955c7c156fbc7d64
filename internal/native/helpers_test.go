package native

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

func newTestRuntime() *ffi.Runtime {
	return ffi.New(ffi.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

// withToken runs fn attached to a fresh runtime.
func withToken(t *testing.T, fn func(py *gil.Token)) {
	t.Helper()
	require.NoError(t, gil.Attach(newTestRuntime(), func(py *gil.Token) error {
		fn(py)
		return nil
	}))
}
