package core

// RefreshZones 根据地图重新计算危险区的激活状态，爆炸后不再变化
// 每个方向从近到远扫描：遇到可破坏物时该格仍激活但阻断后续格子；
// 遇到不可破坏物时该格及后续格子都失效
func (b *Bomb) RefreshZones(m *GameMap) {
	if b.Exploded {
		return
	}

	var blocked [len(Directions)]bool
	for i := range b.Zones {
		z := &b.Zones[i]
		if z.Index == 0 {
			z.Active = true
			continue
		}
		d := directionIndex(z.Direction)
		if d < 0 {
			continue
		}
		if blocked[d] {
			z.Active = false
			continue
		}
		switch m.TileAt(z.Cell) {
		case TileBrick:
			z.Active = true
			blocked[d] = true
		case TileWall:
			z.Active = false
			blocked[d] = true
		default:
			z.Active = true
		}
	}
}

func directionIndex(d Cell) int {
	for i, dir := range Directions {
		if dir == d {
			return i
		}
	}
	return -1
}
