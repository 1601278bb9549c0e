package ai

import (
	"bomberai/pkg/ai/bt"
	"bomberai/pkg/core"
)

// UnitState 规划一个单位所需的单位信息
type UnitState struct {
	ID             int
	Cell           core.Cell
	ExplosionRange int
	Busy           bool // 正在两格之间移动，不做新的规划
	CanPlaceBomb   bool
}

// NewUnitState 从世界中的单位构造
func NewUnitState(u *core.Unit, occ OccupancyOracle) UnitState {
	return UnitState{
		ID:             u.ID,
		Cell:           u.Cell,
		ExplosionRange: u.ExplosionRange,
		Busy:           u.HasPath(),
		CanPlaceBomb:   u.CanUseBomb() && IsBombFree(occ, u.Cell),
	}
}

// Blackboard 一次规划中行为树节点共享的数据
type Blackboard struct {
	World    World
	Unit     UnitState
	Planner  *Planner
	Decision Decision
}

func (bb *Blackboard) AsBT() bt.Blackboard {
	return bb
}

func board(bb bt.Blackboard) *Blackboard {
	return bb.(*Blackboard)
}
