package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGameMap(t *testing.T) {
	m, err := ParseGameMap([]string{".WB", "..."})
	require.NoError(t, err)
	require.Equal(t, 3, m.Width)
	require.Equal(t, 2, m.Height)
	require.Equal(t, TileWall, m.GetTile(1, 0))
	require.Equal(t, TileBrick, m.GetTile(2, 0))
	require.Equal(t, ".WB\n...\n", m.String())

	// 越界视为边界墙
	require.Equal(t, TileWall, m.GetTile(-1, 0))
	require.Equal(t, TileWall, m.TileAt(Cell{X: 0, Y: 2}))
	require.False(t, m.IsWalkable(Cell{X: 3, Y: 1}))

	_, err = ParseGameMap([]string{"..", "."})
	require.Error(t, err)
	_, err = ParseGameMap([]string{"x"})
	require.Error(t, err)
	_, err = ParseGameMap(nil)
	require.Error(t, err)
}

func TestGenerateGameMap(t *testing.T) {
	cfg := DefaultMapConfig()
	m := GenerateGameMap(cfg, 7)

	require.Equal(t, DefaultMapWidth, m.Width)
	require.Equal(t, DefaultMapHeight, m.Height)

	bricks := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := m.GetTile(x, y)
			if x%2 == 1 && y%2 == 1 {
				require.Equal(t, TileWall, tile, "(%d,%d) 应为柱子", x, y)
				continue
			}
			require.NotEqual(t, TileWall, tile)
			if tile == TileBrick {
				bricks++
			}
		}
	}
	require.Positive(t, bricks)

	// 出生点及其安全半径内没有砖块
	for _, s := range cfg.Spawns {
		require.Equal(t, TileEmpty, m.TileAt(s))
		for _, d := range Directions {
			n := s.Add(d)
			if m.InBounds(n) && m.TileAt(n) != TileWall {
				require.Equal(t, TileEmpty, m.TileAt(n), "出生点 %s 旁边 %s", s, n)
			}
		}
	}

	require.Equal(t, m.String(), GenerateGameMap(cfg, 7).String())
}

func TestMapClone(t *testing.T) {
	m := MustParseGameMap("B.")
	c := m.Clone()
	c.SetTile(0, 0, TileEmpty)
	require.Equal(t, TileBrick, m.GetTile(0, 0))
}
