// Package format defines the enumerations shared by the snapshot encoder and
// reader.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/axmeta/errs"
)

type (
	// CompressionType selects the codec applied to a snapshot payload.
	CompressionType uint8
	// Kind identifies how a record's value bytes are laid out.
	Kind uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the payload as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

const (
	KindBool        Kind = 0x01 // constant bool, one byte
	KindInt64       Kind = 0x02 // constant int64, zigzag varint
	KindFloat64     Kind = 0x03 // constant float64, IEEE 754 bits
	KindString      Kind = 0x04 // constant string, uvarint length + bytes
	KindInt64Grid   Kind = 0x11 // varying int64 backed by a grid
	KindFloat64Grid Kind = 0x12 // varying float64 backed by a grid
	KindStringGrid  Kind = 0x13 // varying string backed by a grid
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompression returns the compression type named s, ignoring case.
//
// Returns errs.ErrInvalidCompression for an unknown name.
func ParseCompression(s string) (CompressionType, error) {
	for c := CompressionNone; c <= CompressionLZ4; c++ {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, s)
}

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindInt64Grid:
		return "int64-grid"
	case KindFloat64Grid:
		return "float64-grid"
	case KindStringGrid:
		return "string-grid"
	default:
		return fmt.Sprintf("Kind(0x%02x)", uint8(k))
	}
}

// IsGrid reports whether k describes a varying, grid-backed item.
func (k Kind) IsGrid() bool {
	return k == KindInt64Grid || k == KindFloat64Grid || k == KindStringGrid
}
