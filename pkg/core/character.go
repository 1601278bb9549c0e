package core

// UnitKind 单位类型
type UnitKind int

const (
	UnitPlayer UnitKind = iota // 由输入驱动的玩家
	UnitEnemy                  // 由 AI 驱动的敌人
)

// String 返回单位类型的字符串表示
func (k UnitKind) String() string {
	switch k {
	case UnitPlayer:
		return "玩家"
	case UnitEnemy:
		return "敌人"
	}
	return "未知"
}
