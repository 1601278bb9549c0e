package ai

import (
	"fmt"

	"bomberai/pkg/core"
)

// DecisionKind 规划结果类型
type DecisionKind int

const (
	Stationary        DecisionKind = iota // 原地不动
	NextMove                              // 移动一格
	PlaceBombThenMove                     // 先放炸弹再移动一格
	PlaceBomb                             // 只放炸弹（玩家按键）
)

func (k DecisionKind) String() string {
	switch k {
	case Stationary:
		return "Stationary"
	case NextMove:
		return "NextMove"
	case PlaceBombThenMove:
		return "PlaceBombThenMove"
	case PlaceBomb:
		return "PlaceBomb"
	}
	return "Unknown"
}

// Decision 交给移动执行器的单步决策
type Decision struct {
	Kind      DecisionKind
	Direction core.Cell // 相对当前格的位移
	Target    core.Cell // 目标格
}

// Moves 是否包含移动
func (d Decision) Moves() bool {
	return d.Kind == NextMove || d.Kind == PlaceBombThenMove
}

// PlacesBomb 是否包含放置炸弹
func (d Decision) PlacesBomb() bool {
	return d.Kind == PlaceBomb || d.Kind == PlaceBombThenMove
}

func (d Decision) String() string {
	if d.Moves() {
		return fmt.Sprintf("%s %s->%s", d.Kind, core.DirectionName(d.Direction), d.Target)
	}
	return d.Kind.String()
}
