package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModeSetValueIsCanonical(t *testing.T) {
	first, err := ModeSet{ModeRainmaker, ModeSplatZones}.Value()
	require.NoError(t, err)

	second, err := ModeSet{ModeSplatZones, ModeRainmaker}.Value()
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, "SZ,RM", first)
}

func TestModeSetValueEmpty(t *testing.T) {
	value, err := ModeSet{}.Value()
	require.NoError(t, err)
	require.Nil(t, value)

	value, err = ModeSet(nil).Value()
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestModeSetScan(t *testing.T) {
	var modes ModeSet
	require.NoError(t, modes.Scan("SZ,RM"))
	require.Equal(t, ModeSet{ModeSplatZones, ModeRainmaker}, modes)

	require.NoError(t, modes.Scan(nil))
	require.Nil(t, modes)

	require.NoError(t, modes.Scan([]byte("TW")))
	require.Equal(t, ModeSet{ModeTurfWar}, modes)

	require.Error(t, modes.Scan(42))
}
