package snapshot

import (
	"fmt"

	"github.com/arloliu/axmeta/endian"
	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/format"
)

const (
	// HeaderSize is the size of the fixed snapshot header in bytes.
	HeaderSize = 24
	// Magic identifies a snapshot in bits 4-15 of the options field.
	Magic uint16 = 0xAD10
	// Version is the format version written by this package.
	Version uint8 = 1

	magicMask     uint16 = 0xFFF0
	bigEndianMask uint16 = 0x0002
	reservedMask  uint16 = 0x000D
)

// Header is the fixed-size header at the start of a snapshot.
type Header struct {
	// Options packs the magic number and the byte order flag.
	Options     uint16                 // byte offset 0-1
	Compression format.CompressionType // byte offset 2
	Version     uint8                  // byte offset 3
	NumDims     uint32                 // byte offset 4-7
	ItemCount   uint32                 // byte offset 8-11
	// PayloadSize is the size of the payload before compression.
	PayloadSize uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the payload before compression.
	Checksum uint64 // byte offset 16-23
}

// NewHeader returns a little-endian header for the current format version.
func NewHeader(compression format.CompressionType) Header {
	return Header{Options: Magic, Compression: compression, Version: Version}
}

// IsBigEndian reports whether numeric fields are big-endian.
func (h Header) IsBigEndian() bool {
	return h.Options&bigEndianMask != 0
}

// SetBigEndian sets the byte order flag.
func (h *Header) SetBigEndian(big bool) {
	if big {
		h.Options |= bigEndianMask
	} else {
		h.Options &^= bigEndianMask
	}
}

// Engine returns the byte order of the header fields after Options and of the
// fixed-width payload fields.
func (h Header) Engine() endian.Engine {
	return endian.For(h.IsBigEndian())
}

// Validate checks the magic number, version, reserved bits and compression type.
func (h Header) Validate() error {
	if h.Options&magicMask != Magic {
		return fmt.Errorf("%w: bad magic 0x%04x", errs.ErrInvalidSnapshot, h.Options&magicMask)
	}
	if h.Options&reservedMask != 0 {
		return fmt.Errorf("%w: reserved option bits set (0x%04x)", errs.ErrInvalidSnapshot, h.Options)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, h.Version)
	}
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: %w: 0x%02x", errs.ErrInvalidSnapshot, errs.ErrInvalidCompression, uint8(h.Compression))
	}

	return nil
}

// Append appends the serialized header to buf.
func (h Header) Append(buf []byte) []byte {
	buf = endian.Little().AppendUint16(buf, h.Options)
	buf = append(buf, byte(h.Compression), h.Version)

	engine := h.Engine()
	buf = engine.AppendUint32(buf, h.NumDims)
	buf = engine.AppendUint32(buf, h.ItemCount)
	buf = engine.AppendUint32(buf, h.PayloadSize)

	return engine.AppendUint64(buf, h.Checksum)
}

// ParseHeader parses and validates the header at the start of data.
//
// Returns errs.ErrInvalidSnapshot if data is shorter than HeaderSize or the
// header does not validate.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrInvalidSnapshot, len(data), HeaderSize)
	}

	h := Header{
		Options:     endian.Little().Uint16(data[0:2]),
		Compression: format.CompressionType(data[2]),
		Version:     data[3],
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}

	engine := h.Engine()
	h.NumDims = engine.Uint32(data[4:8])
	h.ItemCount = engine.Uint32(data[8:12])
	h.PayloadSize = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return h, nil
}
