package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngine(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetEngine(false))
	require.Equal(t, binary.BigEndian, GetEngine(true))
	require.Equal(t, GetLittleEndianEngine(), GetEngine(false))
	require.Equal(t, GetBigEndianEngine(), GetEngine(true))
}

func TestEngine_PutAndAppendAgree(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		put := make([]byte, 8)
		engine.PutUint64(put, 0x0102030405060708)

		appended := engine.AppendUint64(nil, 0x0102030405060708)
		require.Equal(t, put, appended)
		require.Equal(t, uint64(0x0102030405060708), engine.Uint64(appended))
	}

	require.Equal(t, []byte{0x08, 0x07}, GetLittleEndianEngine().AppendUint16(nil, 0x0708))
	require.Equal(t, []byte{0x07, 0x08}, GetBigEndianEngine().AppendUint16(nil, 0x0708))
}

func TestIsNativeBigEndian(t *testing.T) {
	native := binary.NativeEndian.AppendUint16(nil, 0x0102)
	require.Equal(t, native[0] == 0x01, IsNativeBigEndian())
}
