package ai

// DefaultMaxSearchCost 搜索树的最大代价（步数），也是允许配置的上限
const DefaultMaxSearchCost = 11

// AIConfig 定义 AI 的行为参数
type AIConfig struct {
	// MaxSearchCost 逃生和躲避搜索的代价上限，防止在空旷地图上无限展开
	MaxSearchCost int

	// StrictEscape 逃生时是否把尚未爆炸的危险区也视为危险
	StrictEscape bool

	// RandomizeRoads 游荡时是否随机选择方向
	RandomizeRoads bool

	// MistakeRate 随机失误率 (0.0-1.0)，失误时原地不动
	MistakeRate float64
}

// 预设配置：普通难度
var AIConfigNormal = AIConfig{
	MaxSearchCost:  DefaultMaxSearchCost,
	RandomizeRoads: true,
}

// 预设配置：谨慎，逃生时只认完全安全的格子
var AIConfigCautious = AIConfig{
	MaxSearchCost:  DefaultMaxSearchCost,
	StrictEscape:   true,
	RandomizeRoads: true,
}

// 预设配置：粗心，偶尔发呆
var AIConfigCareless = AIConfig{
	MaxSearchCost:  DefaultMaxSearchCost,
	RandomizeRoads: true,
	MistakeRate:    0.1,
}

// PresetByName 根据名称获取预设配置
func PresetByName(name string) (AIConfig, bool) {
	switch name {
	case "normal", "":
		return AIConfigNormal, true
	case "cautious":
		return AIConfigCautious, true
	case "careless":
		return AIConfigCareless, true
	}
	return AIConfig{}, false
}

func (c *AIConfig) maxSearchCost() int {
	if c == nil || c.MaxSearchCost <= 0 || c.MaxSearchCost > DefaultMaxSearchCost {
		return DefaultMaxSearchCost
	}
	return c.MaxSearchCost
}
