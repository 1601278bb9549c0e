package ai

import (
	"errors"
	"log"

	"bomberai/pkg/ai/bt"
)

// === 条件节点 ===

// condNotEndNode 当前节点不是死路，可以继续游荡
func condNotEndNode(bb bt.Blackboard) bool {
	return !board(bb).Planner.Current.IsEndNode
}

// condNextIsHazard 选出的下一步是否在危险区
func condNextIsHazard(bb bt.Blackboard) bool {
	b := board(bb)
	return b.Planner.Next != nil && IsHazard(b.World, b.Planner.Next.Position)
}

// === 动作节点 ===

// actScan 计算当前节点的可走格子，不走回头路
func actScan(bb bt.Blackboard) bt.Status {
	b := board(bb)
	p := b.Planner
	p.State = StateScanning

	p.Current.FindNode(b.World)
	if p.Current.Prev != nil {
		p.Current.RemoveRoad(*p.Current.Prev)
	}
	p.IdleSteps++
	return bt.StatusSuccess
}

// actRescan 走到死路后从所在格重新开始
func actRescan(bb bt.Blackboard) bt.Status {
	b := board(bb)
	p := b.Planner
	p.State = StateScanning

	p.Current = NewPathNode(b.Unit.Cell)
	p.Current.FindNode(b.World)
	return bt.StatusSuccess
}

// actGetRoad 从可走格子中取出下一步
func actGetRoad(bb bt.Blackboard) bt.Status {
	b := board(bb)
	p := b.Planner

	if p.config.RandomizeRoads {
		p.Current.RandomizeRoads(p.rng)
	}
	p.Current.PrepareRoads()

	pos, ok := p.Current.NextRoad()
	if !ok {
		p.Next = nil
		return bt.StatusFailure
	}
	p.nextFromRoad(b.World, pos)
	return bt.StatusSuccess
}

// actEscape 下一步有危险时寻找逃生路线
func actEscape(bb bt.Blackboard) bt.Status {
	b := board(bb)
	p := b.Planner

	route, err := Escape(b.World, b.Unit.Cell, p.config)
	if err != nil {
		if !errors.Is(err, ErrNoSafeMove) {
			log.Printf("单位 %d 逃生搜索失败: %v", b.Unit.ID, err)
		}
		p.LastRoute = nil
		return bt.StatusFailure
	}
	p.LastRoute = &route

	if route.Stay {
		// 所在格是安全的，等危险过去
		p.keepStationary(b.Unit.Cell)
		return bt.StatusSuccess
	}

	p.Next = p.Current.Child(route.Next)
	p.Next.IsEndNode = route.NextIsEnd
	p.Next.IsDangerZone = IsHazard(b.World, route.Next)
	p.State = StateEscaping
	b.Decision = p.execute(b.Unit.Cell, NextMove)
	return bt.StatusSuccess
}

// actExecute 沿选出的路走一步
func actExecute(bb bt.Blackboard) bt.Status {
	b := board(bb)
	p := b.Planner
	p.State = StateMoving
	b.Decision = p.execute(b.Unit.Cell, NextMove)
	return bt.StatusSuccess
}

// actTakeCover 假设放下炸弹，能找到躲避的位置才放
func actTakeCover(bb bt.Blackboard) bt.Status {
	b := board(bb)
	p := b.Planner

	route, footprint, err := Cover(b.World, b.Unit.Cell, b.Unit.ExplosionRange, p.config)
	p.LastFootprint = footprint
	if err != nil {
		p.LastRoute = nil
		return bt.StatusFailure
	}
	p.LastRoute = &route

	p.Next = p.Current.Child(route.Next)
	p.Next.IsEndNode = route.NextIsEnd
	p.IdleSteps = 0

	kind := NextMove
	if b.Unit.CanPlaceBomb {
		kind = PlaceBombThenMove
		p.State = StatePlacingBomb
	} else {
		p.State = StateMoving
	}
	b.Decision = p.execute(b.Unit.Cell, kind)
	return bt.StatusSuccess
}

// actKeepStationary 原地不动
func actKeepStationary(bb bt.Blackboard) bt.Status {
	b := board(bb)
	b.Planner.keepStationary(b.Unit.Cell)
	b.Decision = Decision{Kind: Stationary}
	return bt.StatusSuccess
}

// actResetNode 没有路可走，下次从所在格重新开始
func actResetNode(bb bt.Blackboard) bt.Status {
	b := board(bb)
	b.Planner.keepStationary(b.Unit.Cell)
	b.Decision = Decision{Kind: Stationary}
	return bt.StatusSuccess
}
