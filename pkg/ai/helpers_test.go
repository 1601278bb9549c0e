package ai

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"bomberai/pkg/core"
)

// newWorld 用地图模板创建没有单位的世界
func newWorld(rows ...string) *core.Game {
	return core.NewGame(core.MustParseGameMap(rows...), core.DefaultRules(), 1)
}

// addBomb 直接放一颗炸弹，exploded 为 true 时视为正在爆炸
func addBomb(g *core.Game, cell core.Cell, explosionRange int, exploded bool) *core.Bomb {
	b := core.NewBomb(len(g.Bombs)+100, 0, cell, explosionRange, g.Rules)
	b.RefreshZones(g.Map)
	b.Exploded = exploded
	g.Bombs = append(g.Bombs, b)
	return b
}

// openOracle 没有任何障碍的无限网格
type openOracle struct{}

func (openOracle) Query(core.Cell) core.Tags { return 0 }

func sortedCells(set mapset.Set[core.Cell]) []core.Cell {
	cells := FootprintCells(set)
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

func cell(x, y int) core.Cell { return core.Cell{X: x, Y: y} }

// fixedConfig 不随机、不失误
func fixedConfig() *AIConfig {
	return &AIConfig{MaxSearchCost: DefaultMaxSearchCost}
}
