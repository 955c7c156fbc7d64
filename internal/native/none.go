package native

import (
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

// None is the view over the foreign runtime's "no value" singleton.
// Every *None in existence points at that one object.
type None struct {
	any Any
}

// GetNone returns the singleton, borrowed for the lifetime of py.
func GetNone(py *gil.Token) Borrowed[None] {
	return borrowRaw[None](py, py.Runtime().None())
}

func (*None) TypeName() string { return "NoneType" }

// TypeModule reports no module: NoneType is not importable by name.
func (*None) TypeModule() (string, bool) { return "", false }

// TypeObject is looked up from the live singleton rather than a static
// table.
func (*None) TypeObject(py *gil.Token) *ffi.TypeObject {
	return ffi.TypeOf(py.Runtime().None())
}

// IsTypeOf is IsExactTypeOf: NoneType is not usable as a base type.
func (n *None) IsTypeOf(obj Borrowed[Any]) bool {
	return n.IsExactTypeOf(obj)
}

// IsExactTypeOf reports whether obj is the singleton itself.
func (*None) IsExactTypeOf(obj Borrowed[Any]) bool {
	none := GetNone(obj.Token())
	return obj.Is(none)
}
