package native

import (
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

// Owned is a strong reference to a foreign object, independent of any
// token. Its holder must give the reference back with Drop (attached) or
// Release (from anywhere).
//
// The zero value holds nothing: Clone returns another zero value and Drop
// and Release do nothing.
type Owned struct {
	ob *ffi.Object
	rt *ffi.Runtime
}

// Ptr returns the raw foreign pointer.
func (o Owned) Ptr() *ffi.Object {
	return o.ob
}

// Valid reports whether o holds a reference.
func (o Owned) Valid() bool {
	return o.ob != nil
}

// Is reports whether o and other refer to the same foreign object.
func (o Owned) Is(other Pointer) bool {
	return ffi.Is(o.ob, other.Ptr())
}

// Bind borrows o under py. The borrowed view does not take ownership.
func (o Owned) Bind(py *gil.Token) Borrowed[Any] {
	o.checkRuntime(py)
	return borrowRaw[Any](py, o.ob)
}

// Clone takes another strong reference to the same object.
func (o Owned) Clone(py *gil.Token) Owned {
	if !o.Valid() {
		return Owned{}
	}
	o.checkRuntime(py)
	o.rt.IncRef(o.ob)
	return Owned{ob: o.ob, rt: o.rt}
}

// Drop gives the reference back immediately.
func (o Owned) Drop(py *gil.Token) {
	if !o.Valid() {
		return
	}
	o.checkRuntime(py)
	o.rt.DecRef(o.ob)
}

// Release gives the reference back without a token. The decrement is
// applied at the runtime's next attachment.
func (o Owned) Release() {
	if !o.Valid() {
		return
	}
	o.rt.DeferDecRef(o.ob)
}

func (o Owned) checkRuntime(py *gil.Token) {
	if py.Runtime() != o.rt {
		panic("native: owned reference used with a token from another runtime")
	}
}
