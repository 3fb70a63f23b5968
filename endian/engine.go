// Package endian selects the byte order of snapshot headers and fixed-width
// record fields.
//
// An Engine is both a binary.ByteOrder and a binary.AppendByteOrder, so the
// encoder can append fields to a buffer and the reader can decode them in place
// with the same value:
//
//	engine := endian.For(header.IsBigEndian())
//	buf = engine.AppendUint64(buf, math.Float64bits(v))
//
// Engines are stateless and safe for concurrent use.
package endian

import (
	"encoding/binary"
)

// Engine combines binary.ByteOrder and binary.AppendByteOrder.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var (
	_ Engine = binary.LittleEndian
	_ Engine = binary.BigEndian
)

// Little returns the little-endian engine, the snapshot default.
func Little() Engine {
	return binary.LittleEndian
}

// Big returns the big-endian engine.
func Big() Engine {
	return binary.BigEndian
}

// For returns Big() when big is set and Little() otherwise.
func For(big bool) Engine {
	if big {
		return Big()
	}

	return Little()
}

// IsBig reports whether e writes the most significant byte first.
func IsBig(e Engine) bool {
	var b [2]byte
	e.PutUint16(b[:], 0x0102)

	return b[0] == 0x01
}

// Native returns the engine that matches the host byte order.
func Native() Engine {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 0x0102)

	return For(b[0] == 0x01)
}
