package meta

import (
	"testing"

	"github.com/arloliu/axmeta/errs"
	"github.com/stretchr/testify/require"
)

func TestNewAxes(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := NewAxes(0, 2, 4)
		require.NoError(t, err)
		require.Equal(t, 3, a.Len())
		require.Equal(t, 4, a.Max())
		require.Equal(t, 2, a.At(1))
		require.True(t, a.Contains(2))
		require.False(t, a.Contains(3))
		require.True(t, a.ContainsAll(0, 4))
		require.True(t, a.ContainsAll())
		require.False(t, a.ContainsAll(0, 1))
		require.Equal(t, "[0 2 4]", a.String())
	})

	t.Run("empty", func(t *testing.T) {
		a, err := NewAxes()
		require.NoError(t, err)
		require.True(t, a.IsEmpty())
		require.Equal(t, -1, a.Max())
		require.True(t, a.Equal(Axes{}))
		require.Equal(t, "[]", a.String())
	})

	t.Run("rejects negative", func(t *testing.T) {
		_, err := NewAxes(-1, 2)
		require.ErrorIs(t, err, errs.ErrInvalidAxis)
	})

	t.Run("rejects unordered and duplicate", func(t *testing.T) {
		_, err := NewAxes(2, 1)
		require.ErrorIs(t, err, errs.ErrInvalidAxis)

		_, err = NewAxes(1, 1)
		require.ErrorIs(t, err, errs.ErrInvalidAxis)
	})

	t.Run("slice is a copy", func(t *testing.T) {
		in := []int{1, 3}
		a, err := NewAxes(in...)
		require.NoError(t, err)
		in[0] = 0

		out := a.Slice()
		out[1] = 9
		require.True(t, a.EqualInts(1, 3))
	})
}

func TestSortedAxes(t *testing.T) {
	a, err := SortedAxes(3, 1, 3, 0)
	require.NoError(t, err)
	require.True(t, a.EqualInts(0, 1, 3))

	_, err = SortedAxes(2, -4)
	require.ErrorIs(t, err, errs.ErrInvalidAxis)
}
