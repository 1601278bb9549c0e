package ai

import (
	"bomberai/pkg/ai/bt"
)

// AIController 敌人的移动逻辑
//
// 游荡：当前节点不是死路时随机选一条没走过的路，路在危险区时先尝试逃生。
// 死路：假设在脚下放炸弹，能找到躲避位置就放炸弹并开始躲避，否则原地不动。
type AIController struct {
	tree bt.Node
}

// NewAIController 创建 AI 控制器
func NewAIController() *AIController {
	roam := bt.Seq(
		bt.If(condNotEndNode),
		bt.Do(actScan),
		bt.Select(
			bt.Seq(
				bt.Do(actGetRoad),
				bt.Select(
					bt.Seq(
						bt.If(condNextIsHazard),
						bt.Select(
							bt.Do(actEscape),
							bt.Do(actKeepStationary),
						),
					),
					bt.Do(actExecute),
				),
			),
			bt.Do(actResetNode),
		),
	)

	takeCover := bt.Seq(
		bt.Do(actRescan),
		bt.Select(
			bt.Seq(
				bt.Do(actGetRoad),
				bt.Select(
					bt.Do(actTakeCover),
					bt.Do(actKeepStationary),
				),
			),
			bt.Do(actResetNode),
		),
	)

	return &AIController{tree: bt.Select(roam, takeCover)}
}

func (c *AIController) Kind() ControllerKind {
	return ControllerAI
}

func (c *AIController) Decide(p *Planner, w World, u UnitState) Decision {
	if u.Busy {
		return Decision{Kind: Stationary}
	}

	// 应用随机失误
	if p.config.MistakeRate > 0 && p.rng.Float64() < p.config.MistakeRate {
		p.keepStationary(u.Cell)
		return Decision{Kind: Stationary}
	}

	p.State = StateIdle
	bb := &Blackboard{
		World:    w,
		Unit:     u,
		Planner:  p,
		Decision: Decision{Kind: Stationary},
	}
	_ = c.tree.Tick(bb.AsBT())
	return bb.Decision
}
