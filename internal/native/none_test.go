package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

func TestNoneIsItself(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		none := GetNone(py).Any()
		assert.True(t, IsInstanceOf[None](none))
		assert.True(t, IsExactInstanceOf[None](none))
	})
}

func TestNoneTypeObjectConsistent(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		assert.Same(t, TypeObjectOf[None](py), GetNone(py).GetType())
		assert.Same(t, ffi.TypeOf(py.Runtime().None()), TypeObjectOf[None](py))
	})
}

func TestNoneDowncastIsNone(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		got, err := Downcast[None](GetNone(py).Any())
		require.NoError(t, err)
		assert.True(t, got.IsNone())
	})
}

func TestNoneGetIsIdentical(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		a := GetNone(py)
		b := GetNone(py)
		assert.True(t, a.Is(b))
		assert.Same(t, a.Get(), b.Get())
		assert.Equal(t, a.Ptr(), py.Runtime().None())
	})
}

func TestNoneTypeInfo(t *testing.T) {
	var info TypeInfo = (*None)(nil)
	assert.Equal(t, "NoneType", info.TypeName())
	mod, ok := info.TypeModule()
	assert.False(t, ok)
	assert.Empty(t, mod)
	assert.Equal(t, "NoneType", QualifiedName[None]())
	assert.Equal(t, "builtins.dict", QualifiedName[Dict]())
}

func TestDictIsNotNone(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		d := NewDict(py).Any()

		_, err := Downcast[None](d)
		require.Error(t, err)
		assert.True(t, IsDowncastError(err))
		assert.EqualError(t, err, "DOWNCAST: 'dict' object cannot be converted to 'NoneType'")

		_, err = DowncastExact[None](d)
		assert.True(t, IsDowncastError(err))

		assert.False(t, (*None)(nil).IsExactTypeOf(d))
		assert.False(t, (*None)(nil).IsTypeOf(d))
	})
}

func TestNoneMembershipAgreesForEveryObject(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		rt := py.Runtime()
		candidates := map[string]Borrowed[Any]{
			"none":       GetNone(py).Any(),
			"empty_dict": NewDict(py).Any(),
			"empty_str":  NewStr(py, "").Any(),
			"str_None":   NewStr(py, "None").Any(),
			"zero":       NewInt(py, 0).Any(),
			"false":      Bool(py, false),
			"true":       Bool(py, true),
			"none_type":  borrowRaw[Any](py, TypeObjectOf[None](py).AsObject()),
			"object":     borrowRaw[Any](py, rt.ObjectType().AsObject()),
		}

		for name, obj := range candidates {
			t.Run(name, func(t *testing.T) {
				info := (*None)(nil)
				want := name == "none"
				assert.Equal(t, want, info.IsTypeOf(obj))
				assert.Equal(t, want, info.IsExactTypeOf(obj))
				assert.Equal(t, want, obj.IsNone())
			})
		}
	})
}

func TestNoneFromAnotherRuntimeIsNotNone(t *testing.T) {
	other := newTestRuntime()
	var foreign Owned
	var before int64
	require.NoError(t, gil.Attach(other, func(py *gil.Token) error {
		before = GetNone(py).RefCount()
		foreign = GetNone(py).Owned()
		return nil
	}))

	withToken(t, func(py *gil.Token) {
		obj := borrowRaw[Any](py, foreign.Ptr())
		assert.False(t, (*None)(nil).IsExactTypeOf(obj))
	})

	foreign.Release()
	require.NoError(t, gil.Attach(other, func(py *gil.Token) error {
		assert.Equal(t, before, GetNone(py).RefCount())
		return nil
	}))
}

func TestNoneTypeCannotBeSubclassed(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		_, err := py.Runtime().NewType("MyNone", "test", TypeObjectOf[None](py), ffi.FlagBaseType)
		assert.True(t, ffi.IsTypeError(err, ffi.ErrCodeNotBaseType))
	})
}

func TestGetNoneDoesNotTouchRefCount(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		before := GetNone(py).RefCount()
		for i := 0; i < 10; i++ {
			_ = GetNone(py)
		}
		assert.Equal(t, before, GetNone(py).RefCount())
	})
}

func TestGetNoneRequiresAttachedToken(t *testing.T) {
	var escaped *gil.Token
	withToken(t, func(py *gil.Token) { escaped = py })
	assert.PanicsWithValue(t, gil.ErrDetached, func() { GetNone(escaped) })
}
