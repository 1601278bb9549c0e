package ai

import (
	"errors"

	"github.com/zyedidia/generic/mapset"

	"bomberai/pkg/core"
)

// ErrNoSafeMove 在代价上限内找不到安全格子，调用方应原地不动
var ErrNoSafeMove = errors.New("ai: 没有安全的移动")

// Verdict 对一个候选格子的危险判定
type Verdict struct {
	Hazard bool // 该格子不能作为目的地
	Stop   bool // 不再从该格子向外扩展
}

// Evaluator 逃生和躲避两种搜索各自的危险判定
type Evaluator func(c core.Cell) Verdict

// Route 搜索结果。只有 Next 会被执行，其余字段供调试和测试使用
type Route struct {
	Stay      bool      // 当前格已经安全，不需要移动
	Next      core.Cell // 下一步要去的格子（根节点的子节点）
	Direction core.Cell // 下一步的方向
	NextIsEnd bool      // 下一步格子是否为死路
	Path      []core.Cell
	Costs     []int
	Expanded  int // 被扩展的节点数
	Nodes     int // 搜索树节点总数
}

// Destination 选中的目的地格子
func (r Route) Destination() core.Cell {
	if len(r.Path) == 0 {
		return r.Next
	}
	return r.Path[len(r.Path)-1]
}

// searchNode 搜索树节点，parent 为同一数组中的下标，根节点为 -1
type searchNode struct {
	pos      core.Cell
	parent   int
	dir      core.Cell
	cost     int
	terminal bool
	hazard   bool
	expanded bool
}

// Search 代价受限的树搜索
//
// 根节点代价为 0 并视为危险。每一轮扩展当前快照中所有未扩展、非终点且代价小于
// maxCost 的节点：四个方向中排除回到父节点的方向，导航可达且没有炸弹的格子成为
// 子节点（代价 +1）。没有可扩展节点时结束，返回代价最小的非危险节点路径上的第一步，
// 代价相同按发现顺序。
func Search(w World, start core.Cell, eval Evaluator, maxCost int) (Route, error) {
	nodes := make([]searchNode, 1, 64)
	nodes[0] = searchNode{pos: start, parent: -1, hazard: true}
	expanded := 0

	for hasExpandable(nodes, maxCost) {
		snapshot := len(nodes)
		for i := 0; i < snapshot; i++ {
			if !canExpand(&nodes[i], maxCost) {
				continue
			}
			nodes = expand(w, nodes, i, eval, maxCost)
			expanded++
		}
	}

	best := -1
	for i := range nodes {
		if nodes[i].hazard {
			continue
		}
		if best < 0 || nodes[i].cost < nodes[best].cost {
			best = i
		}
	}
	if best < 0 {
		return Route{Expanded: expanded, Nodes: len(nodes)}, ErrNoSafeMove
	}

	route := buildRoute(w, nodes, best)
	route.Expanded = expanded
	route.Nodes = len(nodes)
	return route, nil
}

func canExpand(n *searchNode, maxCost int) bool {
	return !n.terminal && !n.expanded && n.cost < maxCost
}

func hasExpandable(nodes []searchNode, maxCost int) bool {
	for i := range nodes {
		if canExpand(&nodes[i], maxCost) {
			return true
		}
	}
	return false
}

// expand 扩展第 i 个节点，新节点追加在数组末尾
func expand(w World, nodes []searchNode, i int, eval Evaluator, maxCost int) []searchNode {
	parent := nodes[i]
	nodes[i].expanded = true

	var prev *core.Cell
	if parent.parent >= 0 {
		p := nodes[parent.parent].pos
		prev = &p
	}

	for _, d := range core.Directions {
		next := parent.pos.Add(d)
		if prev != nil && next == *prev {
			continue
		}
		if parent.cost > maxCost {
			continue
		}
		if !w.PathExists(parent.pos, next) {
			continue
		}
		if !IsBombFree(w, next) {
			continue
		}

		v := eval(next)
		nodes = append(nodes, searchNode{
			pos:      next,
			parent:   i,
			dir:      d,
			cost:     parent.cost + 1,
			hazard:   v.Hazard,
			terminal: v.Stop || isDeadEnd(w, next, &parent.pos, core.Directions[:]),
		})
	}
	return nodes
}

// buildRoute 沿父节点回溯到根节点的子节点
func buildRoute(nav NavigationOracle, nodes []searchNode, best int) Route {
	var chain []int
	for i := best; i >= 0; i = nodes[i].parent {
		chain = append(chain, i)
	}

	route := Route{
		Path:  make([]core.Cell, 0, len(chain)),
		Costs: make([]int, 0, len(chain)),
	}
	for j := len(chain) - 1; j >= 0; j-- {
		n := nodes[chain[j]]
		route.Path = append(route.Path, n.pos)
		route.Costs = append(route.Costs, n.cost)
	}

	// chain 末尾是根节点，倒数第二个是第一步
	first := nodes[chain[len(chain)-2]]
	root := nodes[0].pos
	route.Next = first.pos
	route.Direction = first.dir
	route.NextIsEnd = isDeadEnd(nav, first.pos, &root, core.Directions[:])
	return route
}

// EscapeEvaluator 逃生搜索的判定：正在爆炸的格子危险；完全不在危险区的格子安全且
// 作为终点。strict 为 false 时尚未爆炸的危险区格子不算危险，为 true 时算危险。
func EscapeEvaluator(occ OccupancyOracle, strict bool) Evaluator {
	return func(c core.Cell) Verdict {
		if IsLethalNow(occ, c) {
			return Verdict{Hazard: true}
		}
		if !IsHazard(occ, c) {
			return Verdict{Stop: true}
		}
		return Verdict{Hazard: strict}
	}
}

// CoverEvaluator 躲避搜索的判定：已有危险区的格子危险且作为终点；
// 假想炸弹足迹内的格子危险
func CoverEvaluator(occ OccupancyOracle, footprint mapset.Set[core.Cell]) Evaluator {
	return func(c core.Cell) Verdict {
		if IsLethalNow(occ, c) || IsHazard(occ, c) {
			return Verdict{Hazard: true, Stop: true}
		}
		if footprint.Has(c) {
			return Verdict{Hazard: true}
		}
		return Verdict{}
	}
}

// Escape 已处于危险时寻找逃生的下一步。当前格已经安全时直接返回 Stay，不做任何扩展
func Escape(w World, start core.Cell, cfg *AIConfig) (Route, error) {
	if !IsHazard(w, start) {
		return Route{Stay: true, Next: start, Path: []core.Cell{start}, Costs: []int{0}}, nil
	}
	return Search(w, start, EscapeEvaluator(w, cfg.StrictEscape), cfg.maxSearchCost())
}

// Cover 假设在当前格放下炸弹后，寻找能躲开爆炸的下一步，同时返回假想足迹
func Cover(w World, start core.Cell, explosionRange int, cfg *AIConfig) (Route, mapset.Set[core.Cell], error) {
	footprint := SimulateFootprint(w, start, explosionRange)
	route, err := Search(w, start, CoverEvaluator(w, footprint), cfg.maxSearchCost())
	return route, footprint, err
}
