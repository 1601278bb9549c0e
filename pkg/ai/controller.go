package ai

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"bomberai/pkg/core"
)

// ControllerKind 单位由谁控制
type ControllerKind int

const (
	ControllerPlayer ControllerKind = iota
	ControllerAI
)

func (k ControllerKind) String() string {
	switch k {
	case ControllerPlayer:
		return "Player"
	case ControllerAI:
		return "AI"
	}
	return "Unknown"
}

// Controller 决定单位每次规划如何移动，只有 PlayerController 和 AIController 两种实现
type Controller interface {
	Kind() ControllerKind
	Decide(p *Planner, w World, u UnitState) Decision
}

// Planner 一个单位的规划状态，跨帧保存当前节点
type Planner struct {
	UnitID    int
	Current   *PathNode // 单位所在（或正在前往）的节点
	Next      *PathNode // 本次规划选出的下一步，执行后清空
	State     State
	IdleSteps int // 连续游荡步数，放炸弹后清零

	// 最近一次搜索的结果，调试用
	LastRoute     *Route
	LastFootprint mapset.Set[core.Cell]

	controller Controller
	config     *AIConfig
	rng        *rand.Rand
}

// NewPlanner 创建规划器，config 为 nil 时使用普通难度
func NewPlanner(unitID int, controller Controller, config *AIConfig, seed int64) *Planner {
	if config == nil {
		config = &AIConfigNormal
	}
	return &Planner{
		UnitID:     unitID,
		controller: controller,
		config:     config,
		rng:        rand.New(rand.NewSource(seed + int64(unitID))),
	}
}

// Kind 控制器类型
func (p *Planner) Kind() ControllerKind {
	return p.controller.Kind()
}

// GetConfig 获取当前配置
func (p *Planner) GetConfig() *AIConfig {
	return p.config
}

// SetConfig 设置新配置
func (p *Planner) SetConfig(config *AIConfig) {
	if config == nil {
		return
	}
	p.config = config
}

// Plan 为单位做一次规划。单位移动中时返回 Stationary 且不改变任何状态
func (p *Planner) Plan(w World, u UnitState) Decision {
	if p.Current == nil || (!u.Busy && p.Current.Position != u.Cell) {
		// 被外部移动过（或第一次规划），从单位所在格重新开始
		p.Current = NewPathNode(u.Cell)
		p.Next = nil
	}
	return p.controller.Decide(p, w, u)
}

// execute 把 Next 变为 Current 并生成移动决策
func (p *Planner) execute(from core.Cell, kind DecisionKind) Decision {
	if p.Next == nil {
		return Decision{Kind: Stationary}
	}
	next := p.Next
	p.Current = next
	p.Next = nil
	return Decision{Kind: kind, Direction: next.Position.Sub(from), Target: next.Position}
}

// keepStationary 放弃当前路线，下次从所在格重新开始
func (p *Planner) keepStationary(cell core.Cell) {
	p.Current = NewPathNode(cell)
	p.Next = nil
	p.State = StateStationary
}

// nextFromRoad 以当前节点的一条路创建 Next 并判断是否死路
func (p *Planner) nextFromRoad(nav NavigationOracle, pos core.Cell) {
	next := p.Current.Child(pos)
	next.IsEndNode = next.IsPathEnded(nav)
	p.Next = next
}
