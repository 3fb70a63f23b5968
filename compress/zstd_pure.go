//go:build !(cgo && gozstd)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/axmeta/format"
)

// The klauspost decoders and encoders run allocation-free once warm, so both
// are pooled. EncodeAll and DecodeAll keep no state between calls.
var (
	zstdDecoderPool = sync.Pool{
		New: func() any {
			d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
			if err != nil {
				panic(fmt.Sprintf("compress: zstd decoder: %v", err))
			}

			return d
		},
	}

	zstdEncoderPool = sync.Pool{
		New: func() any {
			e, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(fmt.Sprintf("compress: zstd encoder: %v", err))
			}

			return e
		},
	}
)

// Compress encodes data as one Zstandard frame.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	e, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(e)

	return e.EncodeAll(data, nil), nil
}

// Decompress decodes a Zstandard frame.
func (ZstdCodec) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize(format.CompressionZstd, nil, size)
	}

	d, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(d)

	var dst []byte
	if size > 0 {
		dst = make([]byte, 0, size)
	}
	out, err := d.DecodeAll(data, dst)
	if err != nil {
		return nil, fmt.Errorf("zstd frame: %w", err)
	}

	return checkSize(format.CompressionZstd, out, size)
}
