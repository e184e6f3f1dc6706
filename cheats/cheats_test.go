package cheats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameGenie(t *testing.T) {
	c, err := ParseGameGenie("1A2-3B4-C56", "infinite lives")
	require.NoError(t, err)
	assert.Equal(t, "infinite lives", c.Name)
	assert.True(t, c.Enabled)
}

func TestParseGameGenieInvalidLength(t *testing.T) {
	_, err := ParseGameGenie("1A2-3B4", "bad")
	assert.Error(t, err)
}

func TestParseGameShark(t *testing.T) {
	c, err := ParseGameShark("00FF5001", "max gold")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), c.NewData)
	assert.Equal(t, uint16(0x0150), c.Address)
}

func TestParseGameSharkInvalidLength(t *testing.T) {
	_, err := ParseGameShark("00FF", "bad")
	assert.Error(t, err)
}

func TestApplyGameSharkAlwaysPatches(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.AddGameShark("00FF5001", "test"))
	assert.Equal(t, uint8(0xFF), s.Apply(0x0150, 0x00))
	assert.Equal(t, uint8(0x00), s.Apply(0x0151, 0x00), "other addresses are untouched")
}

func TestApplyGameGenieOnlyWhenOldDataMatches(t *testing.T) {
	s := NewSet()
	code, err := ParseGameGenie("1A2-3B4-C56", "test")
	require.NoError(t, err)
	s.genie = append(s.genie, code)

	assert.Equal(t, code.NewData, s.Apply(code.Address, code.OldData))
	assert.Equal(t, uint8(0x99), s.Apply(code.Address, 0x99), "a mismatched old-data value leaves the byte untouched")
}

func TestMerge(t *testing.T) {
	a := NewSet()
	require.NoError(t, a.AddGameShark("00FF5001", "a"))

	b := NewSet()
	require.NoError(t, b.AddGameGenie("1A2-3B4-C56", "b"))

	a.Merge(b)
	assert.Len(t, a.genie, 1)
	assert.Len(t, a.shark, 1)
}

func TestMergeNilIsNoOp(t *testing.T) {
	a := NewSet()
	require.NoError(t, a.AddGameShark("00FF5001", "a"))
	a.Merge(nil)
	assert.Len(t, a.shark, 1)
}
