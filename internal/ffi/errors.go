package ffi

import (
	"errors"
	"fmt"
)

// TypeErrorCode categorizes foreign type errors.
type TypeErrorCode string

const (
	// ErrCodeNotBaseType indicates an attempt to derive from a final type.
	ErrCodeNotBaseType TypeErrorCode = "NOT_BASE_TYPE"

	// ErrCodeNotInstantiable indicates a type that cannot create instances.
	ErrCodeNotInstantiable TypeErrorCode = "NOT_INSTANTIABLE"

	// ErrCodeWrongType indicates an operation applied to an object of the wrong type.
	ErrCodeWrongType TypeErrorCode = "WRONG_TYPE"
)

// TypeError is the foreign runtime's type error.
type TypeError struct {
	Code    TypeErrorCode
	Message string
	// TypeName is the type the operation was applied to.
	TypeName string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsTypeError reports whether err is a TypeError with the given code.
func IsTypeError(err error, code TypeErrorCode) bool {
	var te *TypeError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

func notBaseType(t *TypeObject) *TypeError {
	return &TypeError{
		Code:     ErrCodeNotBaseType,
		Message:  fmt.Sprintf("type '%s' is not an acceptable base type", t.Name),
		TypeName: t.Name,
	}
}

func notInstantiable(t *TypeObject) *TypeError {
	return &TypeError{
		Code:     ErrCodeNotInstantiable,
		Message:  fmt.Sprintf("cannot create '%s' instances", t.QualName()),
		TypeName: t.Name,
	}
}

func wrongType(op string, want string, ob *Object) *TypeError {
	return &TypeError{
		Code:     ErrCodeWrongType,
		Message:  fmt.Sprintf("%s requires a '%s' object but received a '%s'", op, want, ob.typ.Name),
		TypeName: ob.typ.Name,
	}
}
