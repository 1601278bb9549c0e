package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDangerClassification(t *testing.T) {
	g := newWorld(
		".....",
		"..W..",
	)
	b := addBomb(g, cell(2, 0), 1, false)

	tests := []struct {
		name     string
		x, y     int
		hazard   bool
		lethal   bool
		bombFree bool
	}{
		{"炸弹所在格", 2, 0, true, false, false},
		{"待爆危险区", 1, 0, true, false, true},
		{"墙后失效的危险区", 2, 1, true, false, true},
		{"安全格", 4, 0, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cell(tt.x, tt.y)
			require.Equal(t, tt.hazard, IsHazard(g, c))
			require.Equal(t, tt.lethal, IsLethalNow(g, c))
			require.Equal(t, tt.bombFree, IsBombFree(g, c))
		})
	}

	b.Exploded = true
	require.True(t, IsLethalNow(g, cell(1, 0)))
	require.True(t, IsLethalNow(g, cell(2, 0)))
	require.True(t, IsBombFree(g, cell(2, 0)))
	// 失效的危险区不造成伤害
	require.False(t, IsLethalNow(g, cell(2, 1)))
	require.True(t, IsHazard(g, cell(2, 1)))
}
