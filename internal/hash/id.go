package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of the given bytes.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ItemKey computes the identity hash of a metadata item from its name and its
// attached axes. The name is followed by a zero byte so that ("a", [1]) and
// ("a\x01", []) never share an input.
func ItemKey(name string, axes []int) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(name)
	_, _ = d.Write([]byte{0})

	var buf [binary.MaxVarintLen64]byte
	for _, a := range axes {
		n := binary.PutUvarint(buf[:], uint64(a)) //nolint:gosec
		_, _ = d.Write(buf[:n])
	}

	return d.Sum64()
}
