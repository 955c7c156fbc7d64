package native

import (
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

// Pointer is anything that refers to a foreign object.
type Pointer interface {
	Ptr() *ffi.Object
}

// Borrowed is a non-owning reference to a foreign object, valid while the
// token it was derived from is attached. It never changes the refcount.
//
// The zero value is not usable.
type Borrowed[T view] struct {
	ptr *T
	py  *gil.Token
}

// Get returns the typed view.
func (b Borrowed[T]) Get() *T {
	b.py.Assert()
	return b.ptr
}

// Ptr returns the raw foreign pointer.
func (b Borrowed[T]) Ptr() *ffi.Object {
	b.py.Assert()
	return rawOf(b.ptr)
}

// Token returns the token this reference is bound to.
func (b Borrowed[T]) Token() *gil.Token {
	return b.py
}

// Check returns gil.ErrDetached if the reference has expired.
func (b Borrowed[T]) Check() error {
	return b.py.Check()
}

// Any widens the reference to the generic view.
func (b Borrowed[T]) Any() Borrowed[Any] {
	return borrowRaw[Any](b.py, b.Ptr())
}

// Is reports whether b and other refer to the same foreign object.
func (b Borrowed[T]) Is(other Pointer) bool {
	return ffi.Is(b.Ptr(), other.Ptr())
}

// GetType returns the foreign type of the referenced object.
func (b Borrowed[T]) GetType() *ffi.TypeObject {
	return ffi.TypeOf(b.Ptr())
}

// TypeName returns the foreign type's name.
func (b Borrowed[T]) TypeName() string {
	return b.GetType().Name
}

// IsNone reports whether b refers to the None singleton.
func (b Borrowed[T]) IsNone() bool {
	return ffi.Is(b.Ptr(), b.py.Runtime().None())
}

// RefCount returns the object's current refcount.
func (b Borrowed[T]) RefCount() int64 {
	return ffi.RefCount(b.Ptr())
}

// Owned promotes the reference to an owned handle, taking a new strong
// reference.
func (b Borrowed[T]) Owned() Owned {
	ob := b.Ptr()
	rt := b.py.Runtime()
	rt.IncRef(ob)
	return Owned{ob: ob, rt: rt}
}
