// Package snapshot serializes a metadata catalog into a compact binary container
// and reads it back as a read-only store.
//
// # Layout
//
// A snapshot is a fixed 24-byte header followed by the payload, compressed with
// the codec named in the header:
//
//	offset  size  field
//	0       2     options (always little-endian): bits 4-15 magic 0xAD1, bit 1 big-endian
//	2       1     compression type
//	3       1     format version
//	4       4     number of dimensions
//	8       4     item count
//	12      4     uncompressed payload size
//	16      8     xxHash64 of the uncompressed payload
//
// The payload is a sequence of item records:
//
//	uvarint name length, name bytes
//	uvarint attached count, uvarint axes
//	uvarint varying count, uvarint axes
//	kind byte
//	value bytes (layout depends on the kind)
//
// A grid value is its rank, the uvarint extent and then the varint origin of
// each grid axis, followed by the cells in row-major order.
//
// Constant bool, int64, float64 and string items are supported, as are varying
// items backed by a meta.Grid of int64, float64 or string with one grid
// dimension per varying axis. Such items seen through views are sampled in view
// space; the sampled range along every varying axis must contain coordinate 0.
//
// # Usage
//
//	enc, _ := snapshot.NewEncoder(snapshot.WithCompression(format.CompressionZstd))
//	data, err := enc.Encode(catalog)
//
//	r, err := snapshot.Open(data)
//	res, _ := store.Get[string](r, "axis", 3)
//
// A Reader indexes records when opened and builds each item the first time it
// is requested. It satisfies store.Store, so views can be derived from it
// directly.
package snapshot
