package ai

import (
	"github.com/zyedidia/generic/mapset"

	"bomberai/pkg/core"
)

// SimulateFootprint 假设此刻在 center 放下范围为 explosionRange 的炸弹，
// 返回其爆炸覆盖的全部格子。只作为推演使用，不会写入世界。
//
// 每个方向由近及远：可破坏物本身计入并阻断该方向；
// 不可破坏物不计入并阻断该方向；其余格子计入后继续。中心格总是计入。
func SimulateFootprint(occ OccupancyOracle, center core.Cell, explosionRange int) mapset.Set[core.Cell] {
	footprint := mapset.New[core.Cell]()
	footprint.Put(center)

	for _, dir := range core.Directions {
		for i := 1; i <= explosionRange; i++ {
			c := center.Add(dir.Scale(i))
			tags := occ.Query(c)
			if tags.Has(core.TagDestructible) {
				footprint.Put(c)
				break
			}
			if tags.Has(core.TagIndestructible) {
				break
			}
			footprint.Put(c)
		}
	}
	return footprint
}

// FootprintCells 把足迹集合转换为切片，顺序不固定
func FootprintCells(footprint mapset.Set[core.Cell]) []core.Cell {
	cells := make([]core.Cell, 0, footprint.Size())
	footprint.Each(func(c core.Cell) {
		cells = append(cells, c)
	})
	return cells
}
