package ai

import "bomberai/pkg/core"

// IsHazard 格子上是否存在任意炸弹的危险区标记（无论是否激活、是否已爆炸）
func IsHazard(occ OccupancyOracle, c core.Cell) bool {
	return occ.Query(c).Has(core.TagDangerZone)
}

// IsLethalNow 格子上的危险区是否属于已爆炸的炸弹，即此刻正在造成伤害
func IsLethalNow(occ OccupancyOracle, c core.Cell) bool {
	return occ.Query(c).Has(core.TagLethalZone)
}

// IsBombFree 格子上是否没有尚未爆炸的炸弹
func IsBombFree(occ OccupancyOracle, c core.Cell) bool {
	return !occ.Query(c).Has(core.TagBomb)
}
