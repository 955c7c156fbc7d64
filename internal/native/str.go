package native

import (
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

// Str is the view over a foreign string.
type Str struct {
	any Any
}

// NewStr creates a str owned by py.
func NewStr(py *gil.Token, s string) Borrowed[Str] {
	ob := py.Runtime().NewStr(s)
	py.Register(ob)
	return borrowRaw[Str](py, ob)
}

// Intern returns the interned str for an identifier.
func Intern(py *gil.Token, s string) Borrowed[Str] {
	ob := py.Runtime().Intern(s)
	py.Register(ob)
	return borrowRaw[Str](py, ob)
}

func (*Str) TypeName() string { return "str" }

func (*Str) TypeModule() (string, bool) { return "builtins", true }

func (*Str) TypeObject(py *gil.Token) *ffi.TypeObject {
	return py.Runtime().StrType()
}

func (*Str) IsTypeOf(obj Borrowed[Any]) bool {
	return obj.GetType().HasFlag(ffi.FlagStrSubclass)
}

func (*Str) IsExactTypeOf(obj Borrowed[Any]) bool {
	return obj.GetType() == obj.Token().Runtime().StrType()
}

// StrValue returns the Go string held by s.
func StrValue(s Borrowed[Str]) string {
	v, _ := s.Token().Runtime().StrValue(s.Ptr())
	return v
}
