package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/axmeta/errs"
)

func TestCompressionType(t *testing.T) {
	tests := []struct {
		c    CompressionType
		name string
	}{
		{CompressionNone, "None"},
		{CompressionZstd, "Zstd"},
		{CompressionS2, "S2"},
		{CompressionLZ4, "LZ4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.c.String())
			require.True(t, tt.c.Valid())

			parsed, err := ParseCompression(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.c, parsed)
		})
	}

	require.Equal(t, "Unknown", CompressionType(0).String())
	require.False(t, CompressionType(9).Valid())

	c, err := ParseCompression("zstd")
	require.NoError(t, err)
	require.Equal(t, CompressionZstd, c)

	_, err = ParseCompression("brotli")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestKind(t *testing.T) {
	require.Equal(t, "string-grid", KindStringGrid.String())
	require.Equal(t, "Kind(0x7f)", Kind(0x7f).String())
	require.True(t, KindFloat64Grid.IsGrid())
	require.False(t, KindFloat64.IsGrid())
}
