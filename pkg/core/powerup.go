package core

// PowerUpType 道具类型
type PowerUpType int

const (
	PowerUpExtraBomb  PowerUpType = iota // 炸弹数量 +1
	PowerUpExtraRange                    // 爆炸范围 +1
	powerUpTypeCount
)

func (p PowerUpType) String() string {
	switch p {
	case PowerUpExtraBomb:
		return "ExtraBomb"
	case PowerUpExtraRange:
		return "ExtraRange"
	}
	return "Unknown"
}

// PowerUp 地图上的道具
type PowerUp struct {
	Cell Cell
	Type PowerUpType
}
