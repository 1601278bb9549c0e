package core

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// TileType 地图块类型
type TileType int

const (
	TileEmpty TileType = iota // 空地
	TileWall                  // 不可破坏的障碍
	TileBrick                 // 可破坏的障碍
)

// GameMap 游戏地图（核心逻辑，不包含渲染）
// 可活动区域之外全部视为不可破坏的边界
type GameMap struct {
	Tiles  [][]TileType
	Width  int
	Height int
}

// MapConfig 地图生成参数
type MapConfig struct {
	Width                 int
	Height                int
	Spawns                []Cell  // 单位出生点，周围保持空旷
	SafeRange             float64 // 出生点周围的安全半径（欧氏距离）
	DestructibleThreshold int     // rng.Intn(100) 大于该值时生成可破坏物
}

// DefaultMapConfig 默认地图参数，出生点在四个角
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Width:                 DefaultMapWidth,
		Height:                DefaultMapHeight,
		Spawns:                CornerSpawns(DefaultMapWidth, DefaultMapHeight),
		SafeRange:             DefaultSafeRange,
		DestructibleThreshold: DestructibleThreshold,
	}
}

// CornerSpawns 返回四个角落的出生点
func CornerSpawns(width, height int) []Cell {
	return []Cell{
		{X: 0, Y: 0},
		{X: width - 1, Y: 0},
		{X: 0, Y: height - 1},
		{X: width - 1, Y: height - 1},
	}
}

// NewGameMap 创建全空地图
func NewGameMap(width, height int) *GameMap {
	m := &GameMap{
		Tiles:  make([][]TileType, height),
		Width:  width,
		Height: height,
	}
	for y := 0; y < height; y++ {
		m.Tiles[y] = make([]TileType, width)
	}
	return m
}

// GenerateGameMap 使用指定种子生成地图（用于确定性）
// 奇数行奇数列放置不可破坏的柱子，其余格子按概率放置可破坏物
func GenerateGameMap(cfg MapConfig, seed int64) *GameMap {
	m := NewGameMap(cfg.Width, cfg.Height)
	r := rand.New(rand.NewSource(seed))

	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			if x%2 == 1 && y%2 == 1 {
				m.Tiles[y][x] = TileWall
			}
		}
	}

	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			c := Cell{X: x, Y: y}
			if isSafeZone(c, cfg.Spawns, cfg.SafeRange) {
				continue
			}
			if x%2 != 0 && y%2 != 0 {
				continue
			}
			if r.Intn(100) > cfg.DestructibleThreshold {
				m.Tiles[y][x] = TileBrick
			}
		}
	}

	return m
}

// isSafeZone 出生点本身以及距离最近出生点不超过 safeRange 的格子
func isSafeZone(c Cell, spawns []Cell, safeRange float64) bool {
	closest := math.Inf(1)
	for _, s := range spawns {
		if s == c {
			return true
		}
		dx := float64(s.X - c.X)
		dy := float64(s.Y - c.Y)
		if d := math.Hypot(dx, dy); d < closest {
			closest = d
		}
	}
	return closest <= safeRange
}

// ParseGameMap 解析地图模板：W=不可破坏, B=可破坏, .=空地
func ParseGameMap(template []string) (*GameMap, error) {
	if len(template) == 0 {
		return nil, fmt.Errorf("地图模板为空")
	}
	width := len(template[0])
	m := NewGameMap(width, len(template))
	for y, row := range template {
		if len(row) != width {
			return nil, fmt.Errorf("第 %d 行长度 %d，期望 %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			switch row[x] {
			case 'W':
				m.Tiles[y][x] = TileWall
			case 'B':
				m.Tiles[y][x] = TileBrick
			case '.':
				m.Tiles[y][x] = TileEmpty
			default:
				return nil, fmt.Errorf("未知地图字符 %q (%d,%d)", row[x], x, y)
			}
		}
	}
	return m, nil
}

// MustParseGameMap 解析失败时 panic，仅用于测试和内置地图
func MustParseGameMap(template ...string) *GameMap {
	m, err := ParseGameMap(template)
	if err != nil {
		panic(err)
	}
	return m
}

// InBounds 是否在可活动区域内
func (m *GameMap) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// GetTile 获取指定位置的地图块，越界视为边界墙
func (m *GameMap) GetTile(x, y int) TileType {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return TileWall
	}
	return m.Tiles[y][x]
}

// TileAt 按格子坐标获取地图块
func (m *GameMap) TileAt(c Cell) TileType {
	return m.GetTile(c.X, c.Y)
}

// SetTile 设置指定位置的地图块
func (m *GameMap) SetTile(x, y int, tile TileType) {
	if x >= 0 && x < m.Width && y >= 0 && y < m.Height {
		m.Tiles[y][x] = tile
	}
}

// IsWalkable 格子是否可以站立（不考虑炸弹）
func (m *GameMap) IsWalkable(c Cell) bool {
	return m.TileAt(c) == TileEmpty
}

// Clone 深拷贝地图
func (m *GameMap) Clone() *GameMap {
	c := NewGameMap(m.Width, m.Height)
	for y := range m.Tiles {
		copy(c.Tiles[y], m.Tiles[y])
	}
	return c
}

// String 以模板格式输出地图
func (m *GameMap) String() string {
	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			switch m.Tiles[y][x] {
			case TileWall:
				sb.WriteByte('W')
			case TileBrick:
				sb.WriteByte('B')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
