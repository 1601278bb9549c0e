package ai

import (
	"bomberai/pkg/core"
)

// InputSource 玩家输入来源（键盘、网络或测试脚本）
type InputSource interface {
	Input() core.Input
}

// InputFunc 让普通函数实现 InputSource
type InputFunc func() core.Input

func (f InputFunc) Input() core.Input { return f() }

// PlayerController 玩家单位：只能走输入对应的方向，不做任何搜索
type PlayerController struct {
	source InputSource
}

// NewPlayerController 创建玩家控制器
func NewPlayerController(source InputSource) *PlayerController {
	return &PlayerController{source: source}
}

func (c *PlayerController) Kind() ControllerKind {
	return ControllerPlayer
}

func (c *PlayerController) Decide(p *Planner, w World, u UnitState) Decision {
	in := c.source.Input()
	wantsBomb := in.Bomb && u.CanPlaceBomb

	if u.Busy {
		if wantsBomb {
			p.State = StatePlacingBomb
			return Decision{Kind: PlaceBomb}
		}
		return Decision{Kind: Stationary}
	}

	p.State = StateIdle
	c.findNode(p, w, in)

	if !c.getRoad(p, w) {
		if wantsBomb {
			p.State = StatePlacingBomb
			return Decision{Kind: PlaceBomb}
		}
		p.State = StateStationary
		return Decision{Kind: Stationary}
	}

	if wantsBomb {
		p.State = StatePlacingBomb
		return p.execute(u.Cell, PlaceBombThenMove)
	}
	p.State = StateMoving
	return p.execute(u.Cell, NextMove)
}

// findNode 没有方向输入时不重新计算，之后的 getRoad 会因为没有路而失败
func (c *PlayerController) findNode(p *Planner, w World, in core.Input) {
	dirs := in.MoveDirections()
	if len(dirs) == 0 {
		return
	}
	p.State = StateScanning
	p.Current.LimitMoveDirections(dirs)
	p.Current.FindNode(w)
}

// getRoad 按输入顺序取路。斜向输入时若第一条路与上一步方向相同则换另一条，
// 这样按住两个方向键会在两个方向之间交替
func (c *PlayerController) getRoad(p *Planner, nav NavigationOracle) bool {
	cur := p.Current
	cur.PrepareRoads()

	if cur.PendingRoads() == 0 {
		p.Next = nil
		return false
	}

	pos, _ := cur.NextRoad()
	if cur.PendingRoads() > 0 && pos.Sub(cur.Position) == cur.Direction {
		pos, _ = cur.NextRoad()
	}
	cur.ClearRoads()

	p.nextFromRoad(nav, pos)
	return true
}
