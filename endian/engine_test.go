package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	require.Equal(t, binary.LittleEndian, For(false))
	require.Equal(t, binary.BigEndian, For(true))
	require.False(t, IsBig(Little()))
	require.True(t, IsBig(Big()))
}

func TestNative(t *testing.T) {
	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	require.Equal(t, first == 0x01, IsBig(Native()))
}

func TestEngine_AppendMatchesPut(t *testing.T) {
	for _, e := range []Engine{Little(), Big()} {
		buf := e.AppendUint32(nil, 0xDEADBEEF)
		buf = e.AppendUint64(buf, 42)

		require.Len(t, buf, 12)
		require.Equal(t, uint32(0xDEADBEEF), e.Uint32(buf[:4]))
		require.Equal(t, uint64(42), e.Uint64(buf[4:]))
	}

	require.Equal(t, []byte{0x10, 0xAD}, Little().AppendUint16(nil, 0xAD10))
	require.Equal(t, []byte{0xAD, 0x10}, Big().AppendUint16(nil, 0xAD10))
}
