package ai

import (
	"math/rand"

	"bomberai/pkg/core"
)

// PathNode 单位当前所在节点及其可走的相邻格子
//
// openRoads 是 FindNode 计算出的可走格子，缓存到下一次 PrepareForNewCalculation；
// 第一次取用时整体转入 roads 队列，之后每次取出一个，取完后不再提供新的移动。
type PathNode struct {
	Position     core.Cell
	Prev         *core.Cell // 父节点位置，根节点为 nil
	Direction    core.Cell  // 相对父节点的位移，根节点为零向量
	Cost         int
	IsEndNode    bool
	IsDangerZone bool

	directions []core.Cell
	openRoads  []core.Cell
	roads      []core.Cell
	roadsReady bool
}

// NewPathNode 以指定格子创建根节点，默认允许四个方向
func NewPathNode(pos core.Cell) *PathNode {
	return &PathNode{
		Position:   pos,
		directions: append([]core.Cell(nil), core.Directions[:]...),
	}
}

// Child 创建沿相邻格子前进一步的子节点
func (n *PathNode) Child(pos core.Cell) *PathNode {
	child := NewPathNode(pos)
	prev := n.Position
	child.Prev = &prev
	child.Direction = pos.Sub(n.Position)
	child.Cost = n.Cost + 1
	return child
}

// LimitMoveDirections 限制可选方向（玩家只能走输入对应的方向）
func (n *PathNode) LimitMoveDirections(dirs []core.Cell) {
	n.directions = append(n.directions[:0], dirs...)
}

// MoveDirections 当前允许的方向
func (n *PathNode) MoveDirections() []core.Cell {
	return n.directions
}

// PrepareForNewCalculation 清空缓存的可走格子
func (n *PathNode) PrepareForNewCalculation() {
	n.openRoads = n.openRoads[:0]
	n.roads = n.roads[:0]
	n.roadsReady = false
}

// FindNode 重新计算可走的相邻格子：导航可达且没有炸弹
func (n *PathNode) FindNode(w World) {
	n.PrepareForNewCalculation()
	for _, d := range n.directions {
		next := n.Position.Add(d)
		if !w.PathExists(n.Position, next) {
			continue
		}
		if IsBombFree(w, next) {
			n.openRoads = append(n.openRoads, next)
		}
	}
}

// RemoveRoad 从可走格子中移除指定格子（AI 不走回头路）
func (n *PathNode) RemoveRoad(c core.Cell) {
	for i, r := range n.openRoads {
		if r == c {
			n.openRoads = append(n.openRoads[:i], n.openRoads[i+1:]...)
			return
		}
	}
}

// RandomizeRoads 打乱可走格子的顺序
func (n *PathNode) RandomizeRoads(rng *rand.Rand) {
	rng.Shuffle(len(n.openRoads), func(i, j int) {
		n.openRoads[i], n.openRoads[j] = n.openRoads[j], n.openRoads[i]
	})
}

// PrepareRoads 首次调用时把可走格子转入队列
func (n *PathNode) PrepareRoads() {
	if n.roadsReady {
		return
	}
	n.roadsReady = true
	n.roads = append(n.roads[:0], n.openRoads...)
}

// NextRoad 从队列取出下一个格子
func (n *PathNode) NextRoad() (core.Cell, bool) {
	if len(n.roads) == 0 {
		return core.Cell{}, false
	}
	c := n.roads[0]
	n.roads = n.roads[1:]
	return c, true
}

// PendingRoads 队列中剩余的格子数
func (n *PathNode) PendingRoads() int {
	return len(n.roads)
}

// ClearRoads 丢弃队列中剩余的格子
func (n *PathNode) ClearRoads() {
	n.roads = n.roads[:0]
}

// OpenRoads 缓存的可走格子
func (n *PathNode) OpenRoads() []core.Cell {
	return append([]core.Cell(nil), n.openRoads...)
}

// IsPathEnded 除去父节点方向后是否已无路可走
func (n *PathNode) IsPathEnded(nav NavigationOracle) bool {
	return isDeadEnd(nav, n.Position, n.Prev, n.directions)
}

func isDeadEnd(nav NavigationOracle, pos core.Cell, prev *core.Cell, dirs []core.Cell) bool {
	for _, d := range dirs {
		next := pos.Add(d)
		if prev != nil && next == *prev {
			continue
		}
		if nav.PathExists(pos, next) {
			return false
		}
	}
	return true
}
