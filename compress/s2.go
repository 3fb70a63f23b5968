package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/axmeta/format"
)

// S2Codec compresses payloads with the S2 block format.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec returns the S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type implements Codec.
func (S2Codec) Type() format.CompressionType { return format.CompressionS2 }

// Compress encodes data as a single S2 block.
func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block. The decoded length stored in the block is
// checked against size before any allocation.
func (S2Codec) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize(format.CompressionS2, nil, size)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 block header: %w", err)
	}
	if size >= 0 && n != size {
		return nil, fmt.Errorf("%s: block holds %d bytes, want %d", format.CompressionS2, n, size)
	}

	return s2.Decode(make([]byte, n), data)
}
