package native

import (
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

// Any is the view over a foreign object of unknown type.
type Any struct {
	ob ffi.Object
}

func (*Any) TypeName() string { return "object" }

func (*Any) TypeModule() (string, bool) { return "builtins", true }

func (*Any) TypeObject(py *gil.Token) *ffi.TypeObject {
	return py.Runtime().ObjectType()
}

// IsTypeOf is always true: every foreign object is an object.
func (*Any) IsTypeOf(obj Borrowed[Any]) bool {
	obj.py.Assert()
	return true
}

func (*Any) IsExactTypeOf(obj Borrowed[Any]) bool {
	return obj.GetType() == obj.Token().Runtime().ObjectType()
}

// NewInt creates an int object owned by py.
func NewInt(py *gil.Token, n int64) Borrowed[Any] {
	ob := py.Runtime().NewInt(n)
	py.Register(ob)
	return borrowRaw[Any](py, ob)
}

// Bool returns the True or False singleton.
func Bool(py *gil.Token, v bool) Borrowed[Any] {
	return borrowRaw[Any](py, py.Runtime().Bool(v))
}
