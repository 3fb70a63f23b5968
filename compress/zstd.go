package compress

import "github.com/arloliu/axmeta/format"

// ZstdCodec compresses payloads as a Zstandard frame. The backend is chosen at
// build time; see the package documentation.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns the Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type implements Codec.
func (ZstdCodec) Type() format.CompressionType { return format.CompressionZstd }
