package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/axmeta/format"
)

// lz4CompressorPool keeps lz4.Compressor hash tables warm between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// lz4MaxUnsized bounds the buffer grown while decoding a block of unknown size.
const lz4MaxUnsized = 64 << 20

// LZ4Codec compresses payloads as a single LZ4 block. The block format carries
// no length, so Decompress relies on the size recorded by the caller.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec returns the LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Type implements Codec.
func (LZ4Codec) Type() format.CompressionType { return format.CompressionLZ4 }

// Compress encodes data as one LZ4 block.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decodes an LZ4 block into exactly size bytes. With a negative
// size the output buffer starts at four times the input and doubles until the
// block fits.
func (LZ4Codec) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize(format.CompressionLZ4, nil, size)
	}

	if size >= 0 {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			return nil, err
		}

		return checkSize(format.CompressionLZ4, buf[:n], size)
	}

	for bufSize := len(data) * 4; bufSize <= lz4MaxUnsized; bufSize *= 2 {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
