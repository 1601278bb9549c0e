package core

// Unit 炸弹人单位（纯逻辑，不包含渲染）
// 时间单位为帧
type Unit struct {
	ID   int
	Kind UnitKind
	Cell Cell // 当前所在格子；移动中时为出发格

	Target   *Cell // 正在前往的相邻格子，nil 表示静止
	stepLeft int   // 到达 Target 剩余帧数
	stepAll  int

	BombLimit      int // 最大同时炸弹数
	ActiveBombs    int // 当前未爆炸的炸弹数
	ExplosionRange int // 炸弹爆炸范围
	Dead           bool
}

// NewUnit 创建新单位
func NewUnit(id int, kind UnitKind, cell Cell) *Unit {
	return &Unit{
		ID:             id,
		Kind:           kind,
		Cell:           cell,
		BombLimit:      DefaultBombLimit,
		ExplosionRange: DefaultExplosionRange,
	}
}

// HasPath 是否正在移动，移动中不进行新的规划
func (u *Unit) HasPath() bool {
	return u.Target != nil
}

// CanUseBomb 是否还有可用的炸弹
func (u *Unit) CanUseBomb() bool {
	return !u.Dead && u.ActiveBombs < u.BombLimit
}

// LoadBomb 炸弹爆炸后归还
func (u *Unit) LoadBomb() {
	if u.ActiveBombs-1 >= 0 {
		u.ActiveBombs--
	}
}

// ApplyPowerUp 应用道具效果
func (u *Unit) ApplyPowerUp(p PowerUpType) {
	switch p {
	case PowerUpExtraBomb:
		if u.BombLimit+1 <= MaxBombLimit {
			u.BombLimit++
		}
	case PowerUpExtraRange:
		if u.ExplosionRange+1 <= MaxExplosionRange {
			u.ExplosionRange++
		}
	}
}

// StartMove 开始向相邻格子移动
func (u *Unit) StartMove(target Cell, frames int) {
	if frames < 1 {
		frames = 1
	}
	t := target
	u.Target = &t
	u.stepLeft = frames
	u.stepAll = frames
}

// advance 推进一帧移动，返回本帧是否到达目标
func (u *Unit) advance() bool {
	if u.Target == nil || u.Dead {
		return false
	}
	u.stepLeft--
	if u.stepLeft > 0 {
		return false
	}
	u.Cell = *u.Target
	u.Target = nil
	u.stepLeft = 0
	return true
}

// Progress 当前这一步的完成比例，用于渲染插值
func (u *Unit) Progress() float64 {
	if u.Target == nil || u.stepAll == 0 {
		return 0
	}
	return 1 - float64(u.stepLeft)/float64(u.stepAll)
}
