package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBBoxValid(t *testing.T) {
	require.True(t, BBox{100, 100, 50, 50}.Valid())
	require.False(t, BBox{100, 100, 50}.Valid())
	require.False(t, BBox{100, 100, 50, 50, 1}.Valid())
	require.False(t, BBox{-1, 100, 50, 50}.Valid())
	require.False(t, BBox(nil).Valid())
}

func TestBBoxAspectRatio(t *testing.T) {
	require.InDelta(t, 2.0, BBox{0, 0, 100, 50}.AspectRatio(), 1e-9)
	// Zero-height boxes default to 1.0 instead of dividing by zero.
	require.InDelta(t, 1.0, BBox{0, 0, 100, 0}.AspectRatio(), 1e-9)
}

func TestNormalizeLabel(t *testing.T) {
	require.Equal(t, "fire_extinguisher", NormalizeLabel("Fire Extinguisher"))
	require.Equal(t, "oxygen_tank", NormalizeLabel("  OXYGEN TANK  "))
	require.Equal(t, "fire_extinguisher", Detection{Label: "Fire Extinguisher"}.Kind())
}
