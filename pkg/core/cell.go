package core

import "fmt"

// Cell 格子坐标，x 轴向右，y 轴向下，0 点在左上角
type Cell struct {
	X, Y int
}

// 四个基本方向
var (
	DirUp    = Cell{X: 0, Y: -1}
	DirRight = Cell{X: 1, Y: 0}
	DirDown  = Cell{X: 0, Y: 1}
	DirLeft  = Cell{X: -1, Y: 0}
)

// Directions 按 上、右、下、左 的顺序排列的四个方向
var Directions = [4]Cell{DirUp, DirRight, DirDown, DirLeft}

// Add 返回 c+d
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub 返回 c-d
func (c Cell) Sub(d Cell) Cell {
	return Cell{X: c.X - d.X, Y: c.Y - d.Y}
}

// Scale 返回 c*k
func (c Cell) Scale(k int) Cell {
	return Cell{X: c.X * k, Y: c.Y * k}
}

// Neg 返回反方向
func (c Cell) Neg() Cell {
	return Cell{X: -c.X, Y: -c.Y}
}

// IsZero 是否为零向量
func (c Cell) IsZero() bool {
	return c.X == 0 && c.Y == 0
}

// Manhattan 曼哈顿距离
func (c Cell) Manhattan(d Cell) int {
	dx, dy := c.X-d.X, c.Y-d.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// DirectionName 方向的可读名称
func DirectionName(d Cell) string {
	switch d {
	case DirUp:
		return "上"
	case DirRight:
		return "右"
	case DirDown:
		return "下"
	case DirLeft:
		return "左"
	case Cell{}:
		return "原地"
	}
	return d.String()
}
