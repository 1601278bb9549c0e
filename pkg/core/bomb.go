package core

// DangerZone 炸弹爆炸范围内的一个格子
// 中心格 Index 为 0 且方向为零向量，其余格子 Index 为沿方向到中心的距离
type DangerZone struct {
	Cell      Cell
	Direction Cell
	Index     int
	Active    bool
}

// Bomb 炸弹（纯逻辑结构，不包含渲染）
type Bomb struct {
	ID         int
	OwnerID    int
	Cell       Cell
	Range      int // 爆炸范围（格子数，不含中心）
	FuseLeft   int // 距离爆炸剩余帧数
	DamageLeft int // 爆炸后伤害窗口剩余帧数
	Exploded   bool
	Zones      []DangerZone // 中心在前，其后每个方向按 Index 递增排列
}

// NewBomb 创建新炸弹并生成危险区
func NewBomb(id, ownerID int, cell Cell, explosionRange int, rules Rules) *Bomb {
	b := &Bomb{
		ID:         id,
		OwnerID:    ownerID,
		Cell:       cell,
		Range:      explosionRange,
		FuseLeft:   rules.FuseFrames,
		DamageLeft: rules.DamageFrames,
	}
	b.createZones()
	return b
}

func (b *Bomb) createZones() {
	b.Zones = make([]DangerZone, 0, 1+4*b.Range)
	b.Zones = append(b.Zones, DangerZone{Cell: b.Cell, Active: true})
	for _, dir := range Directions {
		for i := 1; i <= b.Range; i++ {
			b.Zones = append(b.Zones, DangerZone{
				Cell:      b.Cell.Add(dir.Scale(i)),
				Direction: dir,
				Index:     i,
				Active:    true,
			})
		}
	}
}

// Tick 推进一帧，返回本帧是否引爆以及是否应当移除
func (b *Bomb) Tick() (detonated, expired bool) {
	if !b.Exploded {
		b.FuseLeft--
		if b.FuseLeft <= 0 {
			b.Exploded = true
			return true, false
		}
		return false, false
	}
	b.DamageLeft--
	return false, b.DamageLeft <= 0
}

// ActiveCells 当前激活的危险区格子
func (b *Bomb) ActiveCells() []Cell {
	cells := make([]Cell, 0, len(b.Zones))
	for _, z := range b.Zones {
		if z.Active {
			cells = append(cells, z.Cell)
		}
	}
	return cells
}

// Covers 格子是否处于激活的危险区
func (b *Bomb) Covers(c Cell) bool {
	for _, z := range b.Zones {
		if z.Active && z.Cell == c {
			return true
		}
	}
	return false
}

// Clone 深拷贝炸弹
func (b *Bomb) Clone() *Bomb {
	c := *b
	c.Zones = append([]DangerZone(nil), b.Zones...)
	return &c
}
