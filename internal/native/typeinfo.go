package native

import (
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

// TypeInfo is implemented by every view type to describe and test its
// foreign type. Methods are invoked on a nil receiver.
type TypeInfo interface {
	// TypeName is the foreign type's canonical name.
	TypeName() string

	// TypeModule is the module that owns the type, if any.
	TypeModule() (string, bool)

	// TypeObject returns the runtime's type object for this view.
	TypeObject(py *gil.Token) *ffi.TypeObject

	// IsTypeOf reports whether obj is an instance of the type or a subtype.
	IsTypeOf(obj Borrowed[Any]) bool

	// IsExactTypeOf reports whether obj is an instance of exactly this type.
	IsExactTypeOf(obj Borrowed[Any]) bool
}

// NativeType ties a view type to its TypeInfo implementation so generic
// helpers can name the view and reach its type information.
type NativeType[T view] interface {
	*T
	TypeInfo
}

// Downcast narrows obj to the view T, or returns a *DowncastError if obj is
// not an instance of T's foreign type.
func Downcast[T view, PT NativeType[T]](obj Borrowed[Any]) (Borrowed[T], error) {
	if err := obj.Check(); err != nil {
		return Borrowed[T]{}, err
	}
	if !PT(nil).IsTypeOf(obj) {
		return Borrowed[T]{}, newDowncastError(obj, PT(nil))
	}
	return borrowRaw[T](obj.py, obj.Ptr()), nil
}

// DowncastExact is Downcast without subtypes.
func DowncastExact[T view, PT NativeType[T]](obj Borrowed[Any]) (Borrowed[T], error) {
	if err := obj.Check(); err != nil {
		return Borrowed[T]{}, err
	}
	if !PT(nil).IsExactTypeOf(obj) {
		return Borrowed[T]{}, newDowncastError(obj, PT(nil))
	}
	return borrowRaw[T](obj.py, obj.Ptr()), nil
}

// DowncastOwned binds o under py and downcasts it.
func DowncastOwned[T view, PT NativeType[T]](py *gil.Token, o Owned) (Borrowed[T], error) {
	if err := py.Check(); err != nil {
		return Borrowed[T]{}, err
	}
	return Downcast[T, PT](o.Bind(py))
}

// IsInstanceOf reports whether obj is an instance of T's type or a subtype.
func IsInstanceOf[T view, PT NativeType[T]](obj Borrowed[Any]) bool {
	return PT(nil).IsTypeOf(obj)
}

// IsExactInstanceOf reports whether obj is an instance of exactly T's type.
func IsExactInstanceOf[T view, PT NativeType[T]](obj Borrowed[Any]) bool {
	return PT(nil).IsExactTypeOf(obj)
}

// TypeObjectOf returns the foreign type object for T.
func TypeObjectOf[T view, PT NativeType[T]](py *gil.Token) *ffi.TypeObject {
	return PT(nil).TypeObject(py)
}

// QualifiedName returns "module.name" for T, or just the name if the type
// belongs to no module.
func QualifiedName[T view, PT NativeType[T]]() string {
	info := PT(nil)
	if mod, ok := info.TypeModule(); ok {
		return mod + "." + info.TypeName()
	}
	return info.TypeName()
}
