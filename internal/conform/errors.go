package conform

import (
	"errors"
	"fmt"
)

// Error codes for scenario loading and value building.
const (
	ErrCodeNotFound    = "E_NOT_FOUND"
	ErrCodeNoFiles     = "E_NO_FILES"
	ErrCodeParse       = "E_PARSE"
	ErrCodeInvalid     = "E_INVALID"
	ErrCodeValue       = "E_VALUE"
	ErrCodeUnsupported = "E_UNSUPPORTED"
)

// LoadError describes a scenario or value that could not be loaded.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the LoadError code of err, or "" if err is not one.
func ErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
