package ai

import "bomberai/pkg/core"

// NavigationOracle 导航查询：两个格子之间是否存在可行走路径
type NavigationOracle interface {
	PathExists(from, to core.Cell) bool
}

// OccupancyOracle 占用查询：格子上有哪些带标记的实体
type OccupancyOracle interface {
	Query(c core.Cell) core.Tags
}

// World 规划所需的全部外部查询，*core.Game 实现了该接口
type World interface {
	NavigationOracle
	OccupancyOracle
}

var _ World = (*core.Game)(nil)
