package core

import "strings"

// Tags 某个格子上的实体标记集合
type Tags uint16

const (
	TagDestructible   Tags = 1 << iota // 可破坏障碍
	TagIndestructible                  // 不可破坏障碍（含地图边界）
	TagBomb                            // 尚未爆炸的炸弹
	TagDangerZone                      // 任意炸弹的危险区标记（无论是否激活）
	TagActiveZone                      // 激活的危险区
	TagLethalZone                      // 已爆炸炸弹的激活危险区，正在造成伤害
	TagPowerUp                         // 道具
)

var tagNames = []struct {
	tag  Tags
	name string
}{
	{TagDestructible, "destructible"},
	{TagIndestructible, "indestructible"},
	{TagBomb, "bomb"},
	{TagDangerZone, "zone"},
	{TagActiveZone, "active"},
	{TagLethalZone, "lethal"},
	{TagPowerUp, "powerup"},
}

// Has 是否包含任一指定标记
func (t Tags) Has(f Tags) bool {
	return t&f != 0
}

func (t Tags) String() string {
	if t == 0 {
		return "empty"
	}
	parts := make([]string, 0, len(tagNames))
	for _, tn := range tagNames {
		if t.Has(tn.tag) {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Query 查询格子上的实体标记
func (g *Game) Query(c Cell) Tags {
	var t Tags
	switch g.Map.TileAt(c) {
	case TileWall:
		t |= TagIndestructible
	case TileBrick:
		t |= TagDestructible
	}
	if _, ok := g.PowerUps[c]; ok {
		t |= TagPowerUp
	}
	for _, b := range g.Bombs {
		if !b.Exploded && b.Cell == c {
			t |= TagBomb
		}
		for _, z := range b.Zones {
			if z.Cell != c {
				continue
			}
			t |= TagDangerZone
			if z.Active {
				t |= TagActiveZone
				if b.Exploded {
					t |= TagLethalZone
				}
			}
		}
	}
	return t
}

// PathExists 是否存在从 from 到 to 的可行走路径（炸弹不阻挡导航）
func (g *Game) PathExists(from, to Cell) bool {
	if !g.Map.IsWalkable(from) || !g.Map.IsWalkable(to) {
		return false
	}
	if from == to || from.Manhattan(to) == 1 {
		return true
	}

	queue := []Cell{from}
	visited := map[Cell]bool{from: true}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			next := current.Add(d)
			if visited[next] || !g.Map.IsWalkable(next) {
				continue
			}
			if next == to {
				return true
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return false
}
