package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCoords(t *testing.T) {
	t.Run("returns tuple with correct length", func(t *testing.T) {
		coords, release := GetCoords(5)
		defer release()

		require.Len(t, coords, 5)
	})

	t.Run("reused tuples are zeroed", func(t *testing.T) {
		coords, release := GetCoords(4)
		for i := range coords {
			coords[i] = int64(i + 1)
		}
		release()

		again, release2 := GetCoords(4)
		defer release2()
		require.Equal(t, []int64{0, 0, 0, 0}, again)
	})

	t.Run("grows when capacity insufficient", func(t *testing.T) {
		_, release := GetCoords(2)
		release()

		coords, release2 := GetCoords(64)
		defer release2()
		require.Len(t, coords, 64)
	})

	t.Run("zero length", func(t *testing.T) {
		coords, release := GetCoords(0)
		defer release()

		require.Empty(t, coords)
	})
}

func BenchmarkGetCoords(b *testing.B) {
	for b.Loop() {
		_, release := GetCoords(5)
		release()
	}
}
