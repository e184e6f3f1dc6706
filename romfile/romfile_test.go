package romfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRawROMPassthrough(t *testing.T) {
	raw := []byte{0x00, 0xC3, 0x50, 0x01}
	got, err := Load(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestHasROMExtension(t *testing.T) {
	assert.True(t, hasROMExtension("game.gb"))
	assert.True(t, hasROMExtension("GAME.GBC"))
	assert.True(t, hasROMExtension("dump.bin"))
	assert.False(t, hasROMExtension("readme.txt"))
}
