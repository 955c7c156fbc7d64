package native

import (
	"fmt"

	"github.com/roach88/hostbind/internal/gil"
)

// ToObject is implemented by host values that can produce a foreign object
// without being consumed.
type ToObject interface {
	ToObject(py *gil.Token) Owned
}

// IntoObject is implemented by host values that convert directly into an
// owned foreign object.
type IntoObject interface {
	IntoObject(py *gil.Token) Owned
}

// Unit is the host-side "no value". It converts to the None singleton and
// to nothing else.
type Unit struct{}

// ToObject returns an owned reference to None.
func (Unit) ToObject(py *gil.Token) Owned {
	return GetNone(py).Owned()
}

// IntoObject returns an owned reference to None.
func (Unit) IntoObject(py *gil.Token) Owned {
	return GetNone(py).Owned()
}

// ExtractUnit converts obj back to Unit. It fails unless obj is None.
func ExtractUnit(obj Borrowed[Any]) (Unit, error) {
	if _, err := Downcast[None](obj); err != nil {
		return Unit{}, err
	}
	return Unit{}, nil
}

// ObjectOf converts v through IntoObject or ToObject. A nil v converts to
// None, as Unit does.
func ObjectOf(py *gil.Token, v any) (Owned, error) {
	switch val := v.(type) {
	case nil:
		return Unit{}.IntoObject(py), nil
	case IntoObject:
		return val.IntoObject(py), nil
	case ToObject:
		return val.ToObject(py), nil
	default:
		return Owned{}, &ConversionError{Code: ErrCodeUnconvertible, GoType: fmt.Sprintf("%T", v)}
	}
}
