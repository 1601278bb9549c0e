// Package arena 把世界和每个单位的规划器组合在一起，按帧推进
package arena

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/zyedidia/generic/mapset"

	"bomberai/internal/config"
	"bomberai/pkg/ai"
	"bomberai/pkg/core"
)

// DefaultLogLimit 决策日志保留的条数
const DefaultLogLimit = 256

// Phase 对局阶段
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseOver
)

// LogEntry 一条决策记录
type LogEntry struct {
	Frame    int32
	UnitID   int
	Decision ai.Decision
	State    ai.State
	Applied  bool // 决策是否被世界接受
}

func (e LogEntry) String() string {
	mark := ""
	if !e.Applied {
		mark = " (未执行)"
	}
	return fmt.Sprintf("[%05d] 单位 %d %-11s %s%s", e.Frame, e.UnitID, e.State, e.Decision, mark)
}

// Arena 一局对局
type Arena struct {
	Game   *core.Game
	Phase  Phase
	Winner int

	planners map[int]*ai.Planner
	order    []int

	entries  []LogEntry
	logLimit int
	logger   *log.Logger
}

// New 用已有世界创建对局，单位的规划器通过 AddPlanner 注册
func New(game *core.Game) *Arena {
	return &Arena{
		Game:     game,
		Winner:   -1,
		planners: make(map[int]*ai.Planner),
		logLimit: DefaultLogLimit,
		logger:   log.Default(),
	}
}

// Build 按配置生成地图，在角落放置单位。input 不为 nil 时 0 号单位由玩家控制
func Build(cfg config.Config, input ai.InputSource) (*Arena, error) {
	aiCfg, err := cfg.AI.Build()
	if err != nil {
		return nil, err
	}

	seed := cfg.Arena.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := core.GenerateGameMap(cfg.Arena.MapConfig(), seed)
	a := New(core.NewGame(m, cfg.Arena.Rules(), seed))

	for i, spawn := range cfg.Arena.Spawns() {
		kind := core.UnitEnemy
		var controller ai.Controller = ai.NewAIController()
		if i == 0 && input != nil {
			kind = core.UnitPlayer
			controller = ai.NewPlayerController(input)
		}
		a.AddUnit(core.NewUnit(i, kind, spawn), ai.NewPlanner(i, controller, aiCfg, seed))
	}
	return a, nil
}

// SetLogger 替换日志输出
func (a *Arena) SetLogger(l *log.Logger) {
	a.logger = l
}

// AddUnit 把单位放进世界并注册规划器
func (a *Arena) AddUnit(u *core.Unit, p *ai.Planner) {
	a.Game.AddUnit(u)
	a.planners[u.ID] = p
	a.order = append(a.order, u.ID)
}

// Planner 获取单位的规划器
func (a *Arena) Planner(unitID int) *ai.Planner {
	return a.planners[unitID]
}

// Tick 为每个存活的单位规划并执行，然后推进一帧
func (a *Arena) Tick() []core.Event {
	if a.Phase == PhaseOver {
		return nil
	}

	for _, id := range a.order {
		u := a.Game.Unit(id)
		if u == nil || u.Dead {
			continue
		}
		p := a.planners[id]
		d := p.Plan(a.Game, ai.NewUnitState(u, a.Game))
		if d.Kind == ai.Stationary {
			continue
		}
		a.record(LogEntry{
			Frame:    a.Game.Frame,
			UnitID:   id,
			Decision: d,
			State:    p.State,
			Applied:  a.apply(u, d),
		})
	}

	events := a.Game.Update()
	for _, e := range events {
		a.logEvent(e)
	}

	if over, winner := a.Game.IsGameOver(); over {
		a.Phase = PhaseOver
		a.Winner = winner
		if winner >= 0 {
			a.logger.Printf("游戏结束，获胜者: 单位 %d (第 %d 帧)", winner, a.Game.Frame)
		} else {
			a.logger.Printf("游戏结束，没有获胜者 (第 %d 帧)", a.Game.Frame)
		}
	}
	return events
}

// Run 以固定间隔推进，直到 ctx 取消、对局结束或 onTick 返回 false
func (a *Arena) Run(ctx context.Context, interval time.Duration, onTick func(events []core.Event) bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			events := a.Tick()
			if onTick != nil && !onTick(events) {
				return
			}
			if a.Phase == PhaseOver {
				return
			}
		}
	}
}

// apply 先放炸弹再移动
func (a *Arena) apply(u *core.Unit, d ai.Decision) bool {
	ok := true
	if d.PlacesBomb() {
		if a.Game.UseBomb(u) == nil {
			ok = false
		}
	}
	if d.Moves() {
		if !a.Game.MoveUnit(u, d.Target) {
			ok = false
		}
	}
	return ok
}

func (a *Arena) record(e LogEntry) {
	a.entries = append(a.entries, e)
	if over := len(a.entries) - a.logLimit; over > 0 {
		a.entries = append(a.entries[:0], a.entries[over:]...)
	}
}

func (a *Arena) logEvent(e core.Event) {
	switch e.Kind {
	case core.EventBombPlaced:
		a.logger.Printf("单位 %d 在 %s 放置炸弹 #%d", e.UnitID, e.Cell, e.BombID)
	case core.EventBombDetonated:
		a.logger.Printf("炸弹 #%d 在 %s 爆炸", e.BombID, e.Cell)
	case core.EventUnitKilled:
		a.logger.Printf("单位 %d 在 %s 被炸弹 #%d 炸死", e.UnitID, e.Cell, e.BombID)
	case core.EventPowerUpGathered:
		a.logger.Printf("单位 %d 拾取道具 %s", e.UnitID, e.PowerUp)
	}
}

// Log 最近的决策记录（从旧到新）
func (a *Arena) Log() []LogEntry {
	return append([]LogEntry(nil), a.entries...)
}

// FormatLog 决策记录的文本形式
func (a *Arena) FormatLog() string {
	var sb strings.Builder
	for _, e := range a.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Footprints 各 AI 单位最近一次躲避搜索推演的足迹
func (a *Arena) Footprints() map[int]mapset.Set[core.Cell] {
	out := make(map[int]mapset.Set[core.Cell])
	for id, p := range a.planners {
		if p.LastFootprint.Size() > 0 {
			out[id] = p.LastFootprint
		}
	}
	return out
}
