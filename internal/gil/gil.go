// Package gil provides the execution-context token: proof that the calling
// goroutine is attached to a foreign runtime.
//
// A Token is minted by Attach and is valid only until the callback returns.
// References derived from it (see package native) check the token on use and
// panic with ErrDetached once it has expired.
package gil

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/roach88/hostbind/internal/ffi"
)

// ErrDetached is reported when a token is used after its attachment ended.
var ErrDetached = errors.New("gil: token used after detach")

// Token is the capability for touching foreign memory.
//
// Tokens are not reentrant: calling Attach for the same runtime from inside
// the callback deadlocks. Pass the token down instead.
type Token struct {
	rt       *ffi.Runtime
	id       uuid.UUID
	attached atomic.Bool

	// pool holds references owned by this attachment; they are released
	// when the token detaches.
	pool []*ffi.Object
}

// Attach locks rt, runs fn with a fresh token, then releases the token's
// pool and unlocks. Deferred releases queued while detached are applied
// before fn runs.
func Attach(rt *ffi.Runtime, fn func(py *Token) error) error {
	_, err := With(rt, func(py *Token) (struct{}, error) {
		return struct{}{}, fn(py)
	})
	return err
}

// With is Attach for callbacks that produce a value. The value must not
// hold borrowed references; they expire with the token.
func With[T any](rt *ffi.Runtime, fn func(py *Token) (T, error)) (T, error) {
	py := &Token{rt: rt, id: uuid.Must(uuid.NewV7())}
	logger := rt.Logger().With("token", py.id.String())

	rt.Lock()
	py.attached.Store(true)
	defer func() {
		released := py.releasePool()
		py.attached.Store(false)
		rt.Unlock()
		logger.Debug("detached", "released", released)
	}()

	if n := rt.DrainDeferred(); n > 0 {
		logger.Debug("applied deferred releases", "count", n)
	}
	logger.Debug("attached")

	return fn(py)
}

// Runtime returns the attached runtime. Panics if the token has expired.
func (py *Token) Runtime() *ffi.Runtime {
	py.Assert()
	return py.rt
}

// ID returns the attachment's unique identifier.
func (py *Token) ID() uuid.UUID {
	return py.id
}

// Attached reports whether the token is still valid.
func (py *Token) Attached() bool {
	return py != nil && py.attached.Load()
}

// Check returns ErrDetached if the token is no longer valid.
func (py *Token) Check() error {
	if !py.Attached() {
		return ErrDetached
	}
	return nil
}

// Assert panics with ErrDetached if the token is no longer valid.
func (py *Token) Assert() {
	if err := py.Check(); err != nil {
		panic(err)
	}
}

// Register hands a new reference to the token. It is released when the
// token detaches.
func (py *Token) Register(ob *ffi.Object) {
	py.Assert()
	py.pool = append(py.pool, ob)
}

// PoolSize returns the number of references the token currently owns.
func (py *Token) PoolSize() int {
	return len(py.pool)
}

func (py *Token) releasePool() int {
	n := len(py.pool)
	for i := n - 1; i >= 0; i-- {
		py.rt.DecRef(py.pool[i])
	}
	py.pool = nil
	return n
}

// Logger returns the runtime logger tagged with this token's ID.
func (py *Token) Logger() *slog.Logger {
	return py.rt.Logger().With("token", py.id.String())
}
