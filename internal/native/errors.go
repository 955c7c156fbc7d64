package native

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors at the handle boundary.
type ErrorCode string

const (
	// ErrCodeDowncast indicates an object is not an instance of the target type.
	ErrCodeDowncast ErrorCode = "DOWNCAST"

	// ErrCodeUnconvertible indicates a host value has no foreign conversion.
	ErrCodeUnconvertible ErrorCode = "UNCONVERTIBLE"
)

// DowncastError reports a failed narrowing from Any to a view type.
type DowncastError struct {
	Code ErrorCode

	// From is the foreign type name of the object.
	From string

	// To is the qualified name of the requested view's type.
	To string
}

func (e *DowncastError) Error() string {
	return fmt.Sprintf("%s: '%s' object cannot be converted to '%s'", e.Code, e.From, e.To)
}

func newDowncastError(obj Borrowed[Any], target TypeInfo) *DowncastError {
	to := target.TypeName()
	if mod, ok := target.TypeModule(); ok {
		to = mod + "." + to
	}
	return &DowncastError{
		Code: ErrCodeDowncast,
		From: obj.TypeName(),
		To:   to,
	}
}

// IsDowncastError reports whether err is a *DowncastError.
// Uses errors.As to handle wrapped errors.
func IsDowncastError(err error) bool {
	var de *DowncastError
	return errors.As(err, &de)
}

// ConversionError reports a host value with no foreign representation.
type ConversionError struct {
	Code   ErrorCode
	GoType string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: no foreign conversion for Go type %s", e.Code, e.GoType)
}
