package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
			assert.Equal(t, tt.id, Sum([]byte(tt.data)))
		})
	}
}

func TestItemKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, ItemKey("calibration", []int{0, 1}), ItemKey("calibration", []int{0, 1}))
	})

	t.Run("no axes hashes name and separator", func(t *testing.T) {
		require.Equal(t, ID("owner\x00"), ItemKey("owner", nil))
	})

	t.Run("axes change the key", func(t *testing.T) {
		require.NotEqual(t, ItemKey("lut", []int{3}), ItemKey("lut", []int{2}))
		require.NotEqual(t, ItemKey("lut", []int{1, 2}), ItemKey("lut", []int{12}))
		require.NotEqual(t, ItemKey("lut", nil), ItemKey("lut", []int{0}))
	})

	t.Run("name separator prevents ambiguity", func(t *testing.T) {
		require.NotEqual(t, ItemKey("a", []int{1}), ItemKey("a\x01", nil))
	})
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkItemKey(b *testing.B) {
	name := randString(20)
	axes := []int{0, 2, 3}
	b.ResetTimer()
	for b.Loop() {
		ItemKey(name, axes)
	}
}
