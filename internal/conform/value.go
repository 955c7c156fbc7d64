package conform

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/hostbind/internal/gil"
	"github.com/roach88/hostbind/internal/native"
)

// BuildValue compiles a CUE literal and builds the matching foreign object:
// null is None, structs are dicts, and bool, int and string map to their
// foreign counterparts. New objects are owned by py.
func BuildValue(py *gil.Token, expr string) (native.Borrowed[native.Any], error) {
	v := cuecontext.New().CompileString(expr)
	if err := v.Err(); err != nil {
		return native.Borrowed[native.Any]{}, &LoadError{Code: ErrCodeValue, Message: fmt.Sprintf("compiling %q: %v", expr, err)}
	}
	return fromCUE(py, v, "")
}

func fromCUE(py *gil.Token, v cue.Value, path string) (native.Borrowed[native.Any], error) {
	switch v.Kind() {
	case cue.NullKind:
		return native.GetNone(py).Any(), nil

	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return native.Borrowed[native.Any]{}, valueError(path, err)
		}
		return native.Bool(py, b), nil

	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return native.Borrowed[native.Any]{}, valueError(path, err)
		}
		return native.NewInt(py, n), nil

	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return native.Borrowed[native.Any]{}, valueError(path, err)
		}
		return native.NewStr(py, s).Any(), nil

	case cue.StructKind:
		d := native.NewDict(py)
		iter, err := v.Fields()
		if err != nil {
			return native.Borrowed[native.Any]{}, valueError(path, err)
		}
		for iter.Next() {
			key := iter.Label()
			child, err := fromCUE(py, iter.Value(), path+"."+key)
			if err != nil {
				return native.Borrowed[native.Any]{}, err
			}
			if err := native.DictSetItem(d, key, child); err != nil {
				return native.Borrowed[native.Any]{}, valueError(path, err)
			}
		}
		return d.Any(), nil

	default:
		return native.Borrowed[native.Any]{}, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("value%s: unsupported kind %s", path, v.IncompleteKind()),
		}
	}
}

func valueError(path string, err error) error {
	return &LoadError{Code: ErrCodeValue, Message: fmt.Sprintf("value%s: %v", path, err)}
}
