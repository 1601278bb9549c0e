package core

import (
	"fmt"
	"sort"
)

// UnitState 单位的可序列化状态
type UnitState struct {
	ID             int
	Kind           UnitKind
	Cell           Cell
	Moving         bool
	Target         Cell
	BombLimit      int
	ActiveBombs    int
	ExplosionRange int
	Dead           bool
}

// Snapshot 世界在某一帧的完整状态，用于跨进程传递
type Snapshot struct {
	Frame    int32
	Width    int
	Height   int
	Tiles    []TileType // 行优先
	Units    []UnitState
	Bombs    []Bomb
	PowerUps []PowerUp
}

// Snapshot 导出当前世界状态
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Frame:  g.Frame,
		Width:  g.Map.Width,
		Height: g.Map.Height,
		Tiles:  make([]TileType, 0, g.Map.Width*g.Map.Height),
	}
	for y := 0; y < g.Map.Height; y++ {
		s.Tiles = append(s.Tiles, g.Map.Tiles[y]...)
	}
	for _, u := range g.Units {
		us := UnitState{
			ID:             u.ID,
			Kind:           u.Kind,
			Cell:           u.Cell,
			BombLimit:      u.BombLimit,
			ActiveBombs:    u.ActiveBombs,
			ExplosionRange: u.ExplosionRange,
			Dead:           u.Dead,
		}
		if u.Target != nil {
			us.Moving = true
			us.Target = *u.Target
		}
		s.Units = append(s.Units, us)
	}
	for _, b := range g.Bombs {
		s.Bombs = append(s.Bombs, *b.Clone())
	}
	for c, p := range g.PowerUps {
		s.PowerUps = append(s.PowerUps, PowerUp{Cell: c, Type: p})
	}
	// map 遍历无序，排序后保证快照确定
	sort.Slice(s.PowerUps, func(i, j int) bool {
		a, b := s.PowerUps[i].Cell, s.PowerUps[j].Cell
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return s
}

// NewGameFromSnapshot 从快照恢复世界，危险区状态按快照原样保留
func NewGameFromSnapshot(s Snapshot, rules Rules) (*Game, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	m := NewGameMap(s.Width, s.Height)
	for y := 0; y < s.Height; y++ {
		copy(m.Tiles[y], s.Tiles[y*s.Width:(y+1)*s.Width])
	}

	g := NewGame(m, rules, int64(s.Frame))
	g.Frame = s.Frame

	for _, us := range s.Units {
		u := NewUnit(us.ID, us.Kind, us.Cell)
		u.BombLimit = us.BombLimit
		u.ActiveBombs = us.ActiveBombs
		u.ExplosionRange = us.ExplosionRange
		u.Dead = us.Dead
		if us.Moving {
			u.StartMove(us.Target, rules.StepFrames)
		}
		g.AddUnit(u)
	}

	for i := range s.Bombs {
		b := s.Bombs[i].Clone()
		g.Bombs = append(g.Bombs, b)
		if b.ID >= g.nextBombID {
			g.nextBombID = b.ID + 1
		}
	}
	for _, p := range s.PowerUps {
		g.PowerUps[p.Cell] = p.Type
	}
	return g, nil
}

// validate 检查来自网络的快照，尺寸先限幅再相乘，避免溢出
func (s *Snapshot) validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.Width > MaxMapSide || s.Height > MaxMapSide {
		return fmt.Errorf("快照尺寸无效: %dx%d", s.Width, s.Height)
	}
	if len(s.Tiles) != s.Width*s.Height {
		return fmt.Errorf("快照地图块数量 %d 与尺寸 %dx%d 不符", len(s.Tiles), s.Width, s.Height)
	}
	for _, u := range s.Units {
		if u.BombLimit < 0 || u.BombLimit > MaxBombLimit || u.ActiveBombs < 0 {
			return fmt.Errorf("单位 %d 炸弹数量无效: %d/%d", u.ID, u.ActiveBombs, u.BombLimit)
		}
		if u.ExplosionRange < 0 || u.ExplosionRange > MaxExplosionRange {
			return fmt.Errorf("单位 %d 爆炸范围无效: %d", u.ID, u.ExplosionRange)
		}
	}
	for _, b := range s.Bombs {
		if b.Range < 0 || b.Range > MaxExplosionRange {
			return fmt.Errorf("炸弹 %d 爆炸范围无效: %d", b.ID, b.Range)
		}
	}
	return nil
}
