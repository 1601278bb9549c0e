package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore(t *testing.T) {
	g := newTestGame(
		"..B.",
		".W..",
	)
	u := NewUnit(0, UnitEnemy, Cell{X: 0, Y: 0})
	v := NewUnit(1, UnitPlayer, Cell{X: 3, Y: 1})
	v.Dead = true
	g.AddUnit(u)
	g.AddUnit(v)
	g.UseBomb(u)
	g.MoveUnit(u, Cell{X: 1, Y: 0})
	g.PowerUps[Cell{X: 3, Y: 0}] = PowerUpExtraRange
	g.PowerUps[Cell{X: 0, Y: 1}] = PowerUpExtraBomb
	run(g, 3)

	snap := g.Snapshot()
	require.Equal(t, g.Frame, snap.Frame)
	require.Len(t, snap.Tiles, 8)
	require.Equal(t, []PowerUp{
		{Cell: Cell{X: 3, Y: 0}, Type: PowerUpExtraRange},
		{Cell: Cell{X: 0, Y: 1}, Type: PowerUpExtraBomb},
	}, snap.PowerUps)
	require.True(t, snap.Units[0].Moving)

	restored, err := NewGameFromSnapshot(snap, g.Rules)
	require.NoError(t, err)
	require.Equal(t, g.Map.String(), restored.Map.String())
	require.Equal(t, snap.Units, restored.Snapshot().Units)
	require.Equal(t, snap.Bombs, restored.Snapshot().Bombs)

	for y := 0; y < g.Map.Height; y++ {
		for x := 0; x < g.Map.Width; x++ {
			c := Cell{X: x, Y: y}
			require.Equal(t, g.Query(c), restored.Query(c), "格子 %s", c)
		}
	}

	// 恢复出的世界与原世界互不影响
	restored.Bombs[0].FuseLeft = 1
	require.NotEqual(t, 1, g.Bombs[0].FuseLeft)

	// 新炸弹的 ID 不与快照中的冲突
	restored.Unit(0).BombLimit = 2
	restored.Unit(0).Target = nil
	restored.Unit(0).Cell = Cell{X: 3, Y: 1}
	nb := restored.UseBomb(restored.Unit(0))
	require.NotNil(t, nb)
	require.Greater(t, nb.ID, snap.Bombs[0].ID)
}

func TestNewGameFromSnapshotRejectsBadSize(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"块数不符", Snapshot{Width: 2, Height: 2, Tiles: make([]TileType, 3)}},
		{"空快照", Snapshot{}},
		{"负宽度", Snapshot{Width: -2, Height: -2, Tiles: make([]TileType, 4)}},
		{"乘积溢出", Snapshot{Width: 1 << 62, Height: 4}},
		{"超过最大边长", Snapshot{Width: MaxMapSide + 1, Height: 1, Tiles: make([]TileType, MaxMapSide+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := NewGameFromSnapshot(tt.snap, DefaultRules())
				require.Error(t, err)
			})
		})
	}
}

func TestNewGameFromSnapshotRejectsBadUnits(t *testing.T) {
	base := func() Snapshot {
		g := newTestGame("...")
		g.AddUnit(NewUnit(0, UnitEnemy, Cell{}))
		g.UseBomb(g.Unit(0))
		return g.Snapshot()
	}

	snap := base()
	_, err := NewGameFromSnapshot(snap, DefaultRules())
	require.NoError(t, err)

	mutations := map[string]func(s *Snapshot){
		"负爆炸范围":  func(s *Snapshot) { s.Units[0].ExplosionRange = -1 },
		"爆炸范围过大": func(s *Snapshot) { s.Units[0].ExplosionRange = MaxExplosionRange + 1 },
		"负炸弹上限":  func(s *Snapshot) { s.Units[0].BombLimit = -1 },
		"炸弹上限过大": func(s *Snapshot) { s.Units[0].BombLimit = MaxBombLimit + 1 },
		"负活动炸弹":  func(s *Snapshot) { s.Units[0].ActiveBombs = -1 },
		"炸弹范围无效": func(s *Snapshot) { s.Bombs[0].Range = -3 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := base()
			mutate(&s)
			_, err := NewGameFromSnapshot(s, DefaultRules())
			require.Error(t, err)
		})
	}
}
