package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hostbind/internal/gil"
)

func TestBorrowedExpiresWithToken(t *testing.T) {
	var escaped Borrowed[None]
	withToken(t, func(py *gil.Token) {
		escaped = GetNone(py)
		require.NoError(t, escaped.Check())
	})

	assert.ErrorIs(t, escaped.Check(), gil.ErrDetached)
	assert.PanicsWithValue(t, gil.ErrDetached, func() { escaped.Get() })
	assert.PanicsWithValue(t, gil.ErrDetached, func() { escaped.Ptr() })
	assert.PanicsWithValue(t, gil.ErrDetached, func() { escaped.Owned() })
}

func TestDowncastRejectsExpiredReference(t *testing.T) {
	var escaped Borrowed[Any]
	withToken(t, func(py *gil.Token) { escaped = GetNone(py).Any() })

	_, err := Downcast[None](escaped)
	assert.ErrorIs(t, err, gil.ErrDetached)
}

func TestZeroBorrowedIsUnusable(t *testing.T) {
	var b Borrowed[Any]
	assert.ErrorIs(t, b.Check(), gil.ErrDetached)
}

func TestPromoteAndDrop(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		none := GetNone(py)
		before := none.RefCount()

		owned := none.Owned()
		assert.Equal(t, before+1, none.RefCount())
		assert.True(t, owned.Is(none))

		clone := owned.Clone(py)
		assert.Equal(t, before+2, none.RefCount())

		clone.Drop(py)
		owned.Drop(py)
		assert.Equal(t, before, none.RefCount())
	})
}

func TestOwnedOutlivesToken(t *testing.T) {
	rt := newTestRuntime()

	var owned Owned
	require.NoError(t, gil.Attach(rt, func(py *gil.Token) error {
		owned = NewStr(py, "kept").Owned()
		return nil
	}))
	require.True(t, owned.Valid())

	require.NoError(t, gil.Attach(rt, func(py *gil.Token) error {
		s, err := DowncastOwned[Str](py, owned)
		require.NoError(t, err)
		assert.Equal(t, "kept", StrValue(s))
		assert.Equal(t, int64(1), s.RefCount())
		return nil
	}))

	owned.Release()
	require.NoError(t, gil.Attach(rt, func(py *gil.Token) error {
		assert.Equal(t, int64(0), owned.Bind(py).RefCount())
		return nil
	}))
}

func TestOwnedRejectsForeignToken(t *testing.T) {
	var owned Owned
	withToken(t, func(py *gil.Token) { owned = GetNone(py).Owned() })

	withToken(t, func(py *gil.Token) {
		assert.Panics(t, func() { owned.Bind(py) })
	})
}

func TestTokenPoolOwnsNewObjects(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		before := py.PoolSize()
		d := NewDict(py)
		assert.Equal(t, before+1, py.PoolSize())
		assert.Equal(t, int64(1), d.RefCount())
	})
}

func TestZeroOwnedIsInert(t *testing.T) {
	var zero Owned
	assert.False(t, zero.Valid())
	assert.NotPanics(t, zero.Release)

	withToken(t, func(py *gil.Token) {
		assert.NotPanics(t, func() { zero.Drop(py) })
		assert.False(t, zero.Clone(py).Valid())
	})
}

func TestFailedConversionResultIsSafeToRelease(t *testing.T) {
	withToken(t, func(py *gil.Token) {
		o, err := ObjectOf(py, 42)
		require.Error(t, err)
		assert.NotPanics(t, func() { o.Drop(py) })
		assert.NotPanics(t, o.Release)
	})
}
