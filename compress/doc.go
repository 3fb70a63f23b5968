// Package compress provides the codecs applied to snapshot payloads.
//
// A snapshot payload is the concatenation of all encoded item records. Names
// and axis lists repeat heavily across records, so even the fast codecs shrink
// catalogs of per-axis labels by several times.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): the payload is stored unchanged.
//   - Zstd (format.CompressionZstd): best ratio, for snapshots kept on disk.
//   - S2 (format.CompressionS2): balanced, the encoder default.
//   - LZ4 (format.CompressionLZ4): fastest decompression.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	packed, _ := codec.Compress(payload)
//	payload, err = codec.Decompress(packed, len(payload))
//
// Decompress takes the uncompressed size recorded in the snapshot header. A
// codec whose output does not have that size reports an error, which lets the
// reader reject truncated or tampered payloads before parsing records. Pass a
// negative size when it is not known.
//
// # Zstd Backends
//
// The pure Go klauspost/compress implementation is used by default. Building
// with cgo enabled and the gozstd tag switches to the valyala/gozstd binding:
//
//	go build -tags gozstd ./...
//
// # Thread Safety
//
// Codecs are stateless values and safe for concurrent use. Pooled encoder and
// decoder state is never shared between calls.
package compress
