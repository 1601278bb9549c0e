package core

import "math/rand"

// EventKind 世界事件类型
type EventKind int

const (
	EventBombPlaced EventKind = iota
	EventBombDetonated
	EventBombRemoved
	EventBrickDestroyed
	EventPowerUpDropped
	EventPowerUpGathered
	EventUnitKilled
)

func (k EventKind) String() string {
	switch k {
	case EventBombPlaced:
		return "放置炸弹"
	case EventBombDetonated:
		return "炸弹爆炸"
	case EventBombRemoved:
		return "爆炸结束"
	case EventBrickDestroyed:
		return "砖块被炸毁"
	case EventPowerUpDropped:
		return "掉落道具"
	case EventPowerUpGathered:
		return "拾取道具"
	case EventUnitKilled:
		return "单位死亡"
	}
	return "未知事件"
}

// Event 一帧内发生的世界事件
type Event struct {
	Kind    EventKind
	Frame   int32
	Cell    Cell
	UnitID  int
	BombID  int
	PowerUp PowerUpType
}

// Game 游戏状态（纯逻辑，不包含渲染）
type Game struct {
	Map      *GameMap
	Units    []*Unit
	Bombs    []*Bomb
	PowerUps map[Cell]PowerUpType
	Rules    Rules
	Frame    int32

	rng        *rand.Rand
	nextBombID int
	events     []Event
}

// NewGame 创建新游戏
func NewGame(m *GameMap, rules Rules, seed int64) *Game {
	return &Game{
		Map:        m,
		Units:      make([]*Unit, 0),
		Bombs:      make([]*Bomb, 0),
		PowerUps:   make(map[Cell]PowerUpType),
		Rules:      rules,
		rng:        rand.New(rand.NewSource(seed)),
		nextBombID: 1,
	}
}

// AddUnit 添加单位
func (g *Game) AddUnit(u *Unit) {
	g.Units = append(g.Units, u)
}

// Unit 根据 ID 获取单位
func (g *Game) Unit(id int) *Unit {
	for _, u := range g.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// AliveUnits 所有存活单位
func (g *Game) AliveUnits() []*Unit {
	alive := make([]*Unit, 0, len(g.Units))
	for _, u := range g.Units {
		if !u.Dead {
			alive = append(alive, u)
		}
	}
	return alive
}

// BombAt 获取格子上尚未爆炸的炸弹
func (g *Game) BombAt(c Cell) *Bomb {
	for _, b := range g.Bombs {
		if !b.Exploded && b.Cell == c {
			return b
		}
	}
	return nil
}

// UseBomb 在单位所在格放置炸弹，达到上限或格子已有炸弹时返回 nil
func (g *Game) UseBomb(u *Unit) *Bomb {
	if !u.CanUseBomb() {
		return nil
	}
	if g.BombAt(u.Cell) != nil {
		return nil
	}

	b := NewBomb(g.nextBombID, u.ID, u.Cell, u.ExplosionRange, g.Rules)
	g.nextBombID++
	b.RefreshZones(g.Map)
	g.Bombs = append(g.Bombs, b)
	u.ActiveBombs++

	g.emit(Event{Kind: EventBombPlaced, Cell: b.Cell, UnitID: u.ID, BombID: b.ID})
	return b
}

// MoveUnit 让单位开始向相邻格移动，目标不可行走时返回 false
func (g *Game) MoveUnit(u *Unit, target Cell) bool {
	if u.Dead || u.HasPath() {
		return false
	}
	if u.Cell.Manhattan(target) != 1 || !g.Map.IsWalkable(target) {
		return false
	}
	u.StartMove(target, g.Rules.StepFrames)
	return true
}

// Update 推进一帧，返回本帧发生的事件
func (g *Game) Update() []Event {
	g.Frame++

	for _, u := range g.Units {
		if u.advance() {
			g.gatherPowerUp(u)
		}
	}

	for _, b := range g.Bombs {
		b.RefreshZones(g.Map)
	}

	remaining := g.Bombs[:0]
	for _, b := range g.Bombs {
		detonated, expired := b.Tick()
		if detonated {
			g.detonate(b)
		}
		if expired {
			g.emit(Event{Kind: EventBombRemoved, Cell: b.Cell, UnitID: b.OwnerID, BombID: b.ID})
			continue
		}
		remaining = append(remaining, b)
	}
	for i := len(remaining); i < len(g.Bombs); i++ {
		g.Bombs[i] = nil
	}
	g.Bombs = remaining

	g.applyDamage()

	// 两帧之间通过 UseBomb 产生的事件也在这里一并返回
	events := make([]Event, len(g.events))
	copy(events, g.events)
	g.events = g.events[:0]
	return events
}

// detonate 引爆炸弹：炸毁激活危险区内的砖块，归还炸弹
func (g *Game) detonate(b *Bomb) {
	g.emit(Event{Kind: EventBombDetonated, Cell: b.Cell, UnitID: b.OwnerID, BombID: b.ID})

	for _, z := range b.Zones {
		if !z.Active || g.Map.TileAt(z.Cell) != TileBrick {
			continue
		}
		g.Map.SetTile(z.Cell.X, z.Cell.Y, TileEmpty)
		g.emit(Event{Kind: EventBrickDestroyed, Cell: z.Cell, BombID: b.ID})
		g.maybeDropPowerUp(z.Cell)
	}

	if owner := g.Unit(b.OwnerID); owner != nil {
		owner.LoadBomb()
	}
}

func (g *Game) maybeDropPowerUp(c Cell) {
	if g.rng.Intn(100) <= g.Rules.PowerUpChance {
		return
	}
	p := PowerUpType(g.rng.Intn(int(powerUpTypeCount)))
	g.PowerUps[c] = p
	g.emit(Event{Kind: EventPowerUpDropped, Cell: c, PowerUp: p})
}

func (g *Game) gatherPowerUp(u *Unit) {
	p, ok := g.PowerUps[u.Cell]
	if !ok || u.Dead {
		return
	}
	delete(g.PowerUps, u.Cell)
	u.ApplyPowerUp(p)
	g.emit(Event{Kind: EventPowerUpGathered, Cell: u.Cell, UnitID: u.ID, PowerUp: p})
}

// applyDamage 伤害窗口内站在激活危险区的单位死亡
func (g *Game) applyDamage() {
	for _, b := range g.Bombs {
		if !b.Exploded {
			continue
		}
		for _, u := range g.Units {
			if u.Dead || !b.Covers(u.Cell) {
				continue
			}
			u.Dead = true
			u.Target = nil
			g.emit(Event{Kind: EventUnitKilled, Cell: u.Cell, UnitID: u.ID, BombID: b.ID})
		}
	}
}

// IsGameOver 只剩一个或零个单位存活时游戏结束，返回获胜者 ID（没有则为 -1）
func (g *Game) IsGameOver() (bool, int) {
	if len(g.Units) < 2 {
		return false, -1
	}
	alive := g.AliveUnits()
	switch len(alive) {
	case 0:
		return true, -1
	case 1:
		return true, alive[0].ID
	}
	return false, -1
}

func (g *Game) emit(e Event) {
	e.Frame = g.Frame
	g.events = append(g.events, e)
}
