//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/axmeta/format"
)

// Compress encodes data at level 3 through libzstd.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decodes a Zstandard frame through libzstd.
func (ZstdCodec) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize(format.CompressionZstd, nil, size)
	}

	var dst []byte
	if size > 0 {
		dst = make([]byte, 0, size)
	}
	out, err := gozstd.Decompress(dst, data)
	if err != nil {
		return nil, fmt.Errorf("zstd frame: %w", err)
	}

	return checkSize(format.CompressionZstd, out, size)
}
