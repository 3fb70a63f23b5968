package compress

import "github.com/arloliu/axmeta/format"

// NoneCodec stores payloads unchanged. Both directions return the input slice
// itself, without copying.
type NoneCodec struct{}

var _ Codec = NoneCodec{}

// NewNoneCodec returns the pass-through codec.
func NewNoneCodec() NoneCodec {
	return NoneCodec{}
}

// Type implements Codec.
func (NoneCodec) Type() format.CompressionType { return format.CompressionNone }

// Compress returns data.
func (NoneCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data after checking its length against size.
func (NoneCodec) Decompress(data []byte, size int) ([]byte, error) {
	return checkSize(format.CompressionNone, data, size)
}
