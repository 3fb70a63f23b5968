package compress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/format"
)

// recordLike builds a payload resembling encoded item records: short names and
// axis lists repeated many times.
func recordLike(n int) []byte {
	var buf bytes.Buffer
	for i := range n {
		fmt.Fprintf(&buf, "\x04axis\x01%c\x00\x04\x01%c", byte(i%5), "XYZCT"[i%5])
	}

	return buf.Bytes()
}

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestCodecs_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty":  nil,
		"single": {0x2a},
		"small":  recordLike(3),
		"large":  recordLike(5000),
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.Equal(t, ct, codec.Type())

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				out, err := codec.Decompress(packed, len(data))
				require.NoError(t, err)
				require.Len(t, out, len(data))
				if len(data) > 0 {
					require.Equal(t, data, out)
				}

				out, err = codec.Decompress(packed, -1)
				require.NoError(t, err)
				require.Len(t, out, len(data))
			})
		}
	}
}

func TestCodecs_SizeMismatch(t *testing.T) {
	data := recordLike(100)

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct)
			require.NoError(t, err)

			packed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.Decompress(packed, len(data)+1)
			require.Error(t, err)
		})
	}
}

func TestCodecs_Truncated(t *testing.T) {
	data := recordLike(500)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.Decompress(packed[:len(packed)/2], len(data))
			require.Error(t, err)
		})
	}
}

func TestCompression_Shrinks(t *testing.T) {
	data := recordLike(2000)

	for _, ct := range allTypes[1:] {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, stats, err := Apply(codec, data)
			require.NoError(t, err)
			require.Equal(t, ct, stats.Algorithm)
			require.Equal(t, len(data), stats.OriginalSize)
			require.Less(t, stats.Ratio(), 0.5)
			require.Greater(t, stats.Savings(), 50.0)
		})
	}
}

func TestStats_Empty(t *testing.T) {
	var s Stats
	require.Zero(t, s.Ratio())
	require.Zero(t, s.Savings())
}

func TestCodecLookup_Invalid(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = CreateCodec(format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}
