package compress

import (
	"fmt"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/format"
)

// Compressor compresses a complete snapshot payload.
//
// The returned slice is owned by the caller; the input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload compressed by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original payload. When size is not negative the
	// result must be exactly size bytes long.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions for one algorithm.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// Stats describes one compression of a payload. The snapshot encoder logs it.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns CompressedSize / OriginalSize, or 0 for an empty payload.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// Savings returns the space saved as a percentage of the original size.
func (s Stats) Savings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return (1 - s.Ratio()) * 100
}

// Apply compresses data with codec and reports the resulting sizes.
func Apply(codec Codec, data []byte) ([]byte, Stats, error) {
	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression: %w", codec.Type(), err)
	}

	return out, Stats{Algorithm: codec.Type(), OriginalSize: len(data), CompressedSize: len(out)}, nil
}

// CreateCodec returns a new codec for compressionType.
//
// Returns errs.ErrInvalidCompression for an unknown type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoneCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrInvalidCompression, compressionType, uint8(compressionType))
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoneCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec returns the shared built-in codec for compressionType.
//
// Returns errs.ErrInvalidCompression for an unknown type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrInvalidCompression, compressionType, uint8(compressionType))
}

// checkSize verifies a decoded payload against the expected size.
func checkSize(c format.CompressionType, out []byte, size int) ([]byte, error) {
	if size >= 0 && len(out) != size {
		return nil, fmt.Errorf("%s: decoded %d bytes, want %d", c, len(out), size)
	}

	return out, nil
}
