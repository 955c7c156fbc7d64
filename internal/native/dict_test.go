package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

func TestDictMembershipIncludesSubtypes(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		rt := py.Runtime()
		sub, err := rt.NewType("OrderedDict", "collections", TypeObjectOf[Dict](py), ffi.FlagBaseType)
		require.NoError(t, err)
		ob, err := rt.NewInstance(sub)
		require.NoError(t, err)
		py.Register(ob)
		obj := borrowRaw[Any](py, ob)

		assert.True(t, IsInstanceOf[Dict](obj))
		assert.False(t, IsExactInstanceOf[Dict](obj))

		_, err = Downcast[Dict](obj)
		assert.NoError(t, err)
		_, err = DowncastExact[Dict](obj)
		assert.True(t, IsDowncastError(err))

		assert.False(t, IsInstanceOf[None](obj))
	})
}

func TestDictItems(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		d := NewDict(py)
		assert.Equal(t, 0, DictLen(d))

		require.NoError(t, DictSetItem(d, "a", GetNone(py)))
		require.NoError(t, DictSetItem(d, "b", NewInt(py, 7)))
		assert.Equal(t, 2, DictLen(d))
		assert.Equal(t, []string{"a", "b"}, DictKeys(d))

		v, ok := DictGetItem(d, "a")
		require.True(t, ok)
		assert.True(t, v.IsNone())

		_, ok = DictGetItem(d, "missing")
		assert.False(t, ok)

		assert.Equal(t, "{'a': None, 'b': 7}", Repr(d.Any()))
	})
}

func TestStrMembership(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		s := NewStr(py, "it's")
		assert.True(t, IsExactInstanceOf[Str](s.Any()))
		assert.False(t, IsInstanceOf[Dict](s.Any()))
		assert.Equal(t, `'it\'s'`, Repr(s.Any()))

		a := Intern(py, "ﬁle")
		b := Intern(py, "file")
		assert.True(t, a.Is(b))
		assert.Equal(t, "file", StrValue(a))
	})
}

func TestAnyMembership(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		none := GetNone(py).Any()
		assert.True(t, IsInstanceOf[Any](none))
		assert.False(t, IsExactInstanceOf[Any](none))

		got, err := Downcast[Any](none)
		require.NoError(t, err)
		assert.True(t, got.Is(none))
	})
}

func TestRepr(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		assert.Equal(t, "None", Repr(GetNone(py).Any()))
		assert.Equal(t, "True", Repr(Bool(py, true)))
		assert.Equal(t, "False", Repr(Bool(py, false)))
		assert.Equal(t, "-3", Repr(NewInt(py, -3)))
		assert.Equal(t, "{}", Repr(NewDict(py).Any()))
	})
}

func TestReprSelfReferencingDict(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		d := NewDict(py)
		require.NoError(t, DictSetItem(d, "self", d))
		assert.Equal(t, "{'self': {...}}", Repr(d.Any()))

		// Break the cycle so the pool can free d.
		require.NoError(t, DictSetItem(d, "self", GetNone(py)))
	})
}

func TestReprSharedDictIsNotACycle(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		inner := NewDict(py)
		require.NoError(t, DictSetItem(inner, "x", NewInt(py, 1)))
		outer := NewDict(py)
		require.NoError(t, DictSetItem(outer, "a", inner))
		require.NoError(t, DictSetItem(outer, "b", inner))
		assert.Equal(t, "{'a': {'x': 1}, 'b': {'x': 1}}", Repr(outer.Any()))
	})
}
