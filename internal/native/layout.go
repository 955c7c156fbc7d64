package native

import (
	"unsafe"

	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

// view is the closed set of types that may be laid over a foreign object.
type view interface {
	Any | None | Dict | Str
}

// Each view must be exactly one object header. A size mismatch in either
// direction fails to compile (negative or non-zero array length).
var (
	_ [unsafe.Sizeof(Any{}) - unsafe.Sizeof(ffi.Object{})]struct{}
	_ [unsafe.Sizeof(ffi.Object{}) - unsafe.Sizeof(Any{})]struct{}
	_ [unsafe.Sizeof(None{}) - unsafe.Sizeof(Any{})]struct{}
	_ [unsafe.Sizeof(Any{}) - unsafe.Sizeof(None{})]struct{}
	_ [unsafe.Sizeof(Dict{}) - unsafe.Sizeof(Any{})]struct{}
	_ [unsafe.Sizeof(Any{}) - unsafe.Sizeof(Dict{})]struct{}
	_ [unsafe.Sizeof(Str{}) - unsafe.Sizeof(Any{})]struct{}
	_ [unsafe.Sizeof(Any{}) - unsafe.Sizeof(Str{})]struct{}
)

// borrowRaw reinterprets a raw foreign pointer as a typed view. It is the
// only place a *ffi.Object becomes a *T. Callers must already know that ob
// is a valid instance of T's foreign type.
func borrowRaw[T view](py *gil.Token, ob *ffi.Object) Borrowed[T] {
	return Borrowed[T]{ptr: (*T)(unsafe.Pointer(ob)), py: py}
}

// rawOf is the inverse of borrowRaw.
func rawOf[T view](p *T) *ffi.Object {
	return (*ffi.Object)(unsafe.Pointer(p))
}
