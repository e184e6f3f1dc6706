package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedRoundTrip(t *testing.T) {
	s := New()
	s.Write8(0xAB)
	s.Write16(0x1234)
	s.Write32(0xDEADBEEF)
	s.WriteBool(true)
	s.WriteBool(false)
	s.WriteData([]byte{1, 2, 3})

	r := FromBytes(s.Bytes())
	assert.Equal(t, uint8(0xAB), r.Read8())
	assert.Equal(t, uint16(0x1234), r.Read16())
	assert.Equal(t, uint32(0xDEADBEEF), r.Read32())
	assert.True(t, r.ReadBool())
	assert.False(t, r.ReadBool())

	buf := make([]byte, 3)
	r.ReadData(buf)
	assert.Equal(t, []byte{1, 2, 3}, buf)
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	s := New()
	s.Write8(0x42)
	s.Write16(0xBEEF)

	compressed, err := s.Compress()
	require.NoError(t, err)
	assert.NotEmpty(t, compressed)

	r, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), r.Read8())
	assert.Equal(t, uint16(0xBEEF), r.Read16())
}
