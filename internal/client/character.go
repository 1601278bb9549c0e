package client

import (
	"image/color"

	"bomberai/pkg/core"
)

// UnitStyle 单位的配色（渲染相关）
type UnitStyle struct {
	Name         string
	BodyColor    color.RGBA
	OutlineColor color.RGBA
	HandColor    color.RGBA
	ShoeColor    color.RGBA
}

var unitStyles = []UnitStyle{
	{
		Name:         "WHITE",
		BodyColor:    color.RGBA{255, 255, 255, 255},
		OutlineColor: color.RGBA{0, 0, 0, 255},
		HandColor:    color.RGBA{255, 150, 150, 255},
		ShoeColor:    color.RGBA{50, 50, 50, 255},
	},
	{
		Name:         "BLACK",
		BodyColor:    color.RGBA{40, 40, 40, 255},
		OutlineColor: color.RGBA{200, 200, 200, 255},
		HandColor:    color.RGBA{80, 80, 120, 255},
		ShoeColor:    color.RGBA{180, 180, 180, 255},
	},
	{
		Name:         "RED",
		BodyColor:    color.RGBA{255, 80, 80, 255},
		OutlineColor: color.RGBA{150, 0, 0, 255},
		HandColor:    color.RGBA{255, 200, 100, 255},
		ShoeColor:    color.RGBA{100, 0, 0, 255},
	},
	{
		Name:         "BLUE",
		BodyColor:    color.RGBA{100, 180, 255, 255},
		OutlineColor: color.RGBA{0, 50, 150, 255},
		HandColor:    color.RGBA{150, 220, 255, 255},
		ShoeColor:    color.RGBA{0, 30, 100, 255},
	},
}

// StyleFor 按单位 ID 轮流分配配色
func StyleFor(u *core.Unit) UnitStyle {
	return unitStyles[u.ID%len(unitStyles)]
}
