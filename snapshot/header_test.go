package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/format"
)

func TestHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		h := NewHeader(format.CompressionZstd)
		h.SetBigEndian(big)
		h.NumDims = 5
		h.ItemCount = 12
		h.PayloadSize = 4099
		h.Checksum = 0x0123456789ABCDEF

		data := h.Append(nil)
		require.Len(t, data, HeaderSize)

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, h, parsed)
		require.Equal(t, big, parsed.IsBigEndian())
	}
}

func TestHeader_Layout(t *testing.T) {
	h := NewHeader(format.CompressionLZ4)
	h.SetBigEndian(true)
	h.NumDims = 3

	data := h.Append(nil)
	// options stay little-endian so the byte order flag can be read first
	require.Equal(t, []byte{0x12, 0xAD}, data[0:2])
	require.Equal(t, byte(format.CompressionLZ4), data[2])
	require.Equal(t, Version, data[3])
	require.Equal(t, []byte{0, 0, 0, 3}, data[4:8])

	h.SetBigEndian(false)
	data = h.Append(nil)
	require.Equal(t, []byte{0x10, 0xAD}, data[0:2])
	require.Equal(t, []byte{3, 0, 0, 0}, data[4:8])
}

func TestParseHeader_Invalid(t *testing.T) {
	valid := NewHeader(format.CompressionS2).Append(nil)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"short", func(b []byte) []byte { return b[:HeaderSize-1] }},
		{"bad magic", func(b []byte) []byte { b[1] = 0xEA; return b }},
		{"reserved bit", func(b []byte) []byte { b[0] |= 0x01; return b }},
		{"version", func(b []byte) []byte { b[3] = 2; return b }},
		{"compression", func(b []byte) []byte { b[2] = 0x09; return b }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), valid...))
			_, err := ParseHeader(data)
			require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
		})
	}
}
