package core

// 屏幕和地图配置
const (
	TileSize         = 32
	DefaultMapWidth  = 21  // 可活动区域宽度（不含外圈边界）
	DefaultMapHeight = 20  // 可活动区域高度（不含外圈边界）
	DefaultSafeRange = 1   // 出生点周围不生成可破坏物的半径
	MaxMapSide       = 256 // 快照恢复时允许的最大边长
)

// 游戏帧率
const (
	FPS = 60
)

// 炸弹配置（帧）
const (
	BombFuseFrames   = 3 * FPS // 引信 3 秒
	BombDamageFrames = FPS / 2 // 爆炸后造成伤害的窗口
	UnitStepFrames   = FPS / 5 // 移动一格所需帧数
)

// 单位能力配置
const (
	DefaultBombLimit      = 1
	DefaultExplosionRange = 1 // 不含炸弹所在格
	MaxBombLimit          = 10
	MaxExplosionRange     = 10
)

// 地图生成概率（与 rng.Intn(100) 比较，严格大于才生成）
const (
	DestructibleThreshold = 50
	PowerUpThreshold      = 90
)

// Rules 一局游戏的计时参数，单位为帧
type Rules struct {
	FuseFrames    int
	DamageFrames  int
	StepFrames    int
	PowerUpChance int // rng.Intn(100) > PowerUpChance 时掉落道具
}

// DefaultRules 返回默认计时参数
func DefaultRules() Rules {
	return Rules{
		FuseFrames:    BombFuseFrames,
		DamageFrames:  BombDamageFrames,
		StepFrames:    UnitStepFrames,
		PowerUpChance: PowerUpThreshold,
	}
}
