package client

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bomberai/pkg/core"
)

// UnitRenderer 单位渲染器
type UnitRenderer struct {
	Unit      *core.Unit
	Style     UnitStyle
	Facing    core.Cell
	AnimFrame int
	animTicks int
}

// NewUnitRenderer 创建单位渲染器
func NewUnitRenderer(u *core.Unit) *UnitRenderer {
	return &UnitRenderer{Unit: u, Style: StyleFor(u), Facing: core.DirDown}
}

// Position 单位当前像素坐标（左上角），移动中按进度插值
func (r *UnitRenderer) Position() (float32, float32) {
	u := r.Unit
	x := float32(u.Cell.X * core.TileSize)
	y := float32(u.Cell.Y * core.TileSize)
	if u.Target != nil {
		p := float32(u.Progress())
		x += float32((u.Target.X-u.Cell.X)*core.TileSize) * p
		y += float32((u.Target.Y-u.Cell.Y)*core.TileSize) * p
	}
	return x, y
}

// Update 更新朝向和走路动画
func (r *UnitRenderer) Update() {
	u := r.Unit
	if u.Target == nil {
		r.animTicks = 0
		r.AnimFrame = 0
		return
	}
	r.Facing = u.Target.Sub(u.Cell)

	// 每 9 帧切换一次
	r.animTicks++
	if r.animTicks >= 9 {
		r.animTicks = 0
		r.AnimFrame = (r.AnimFrame + 1) % 2
	}
}

// Draw 绘制单位
func (r *UnitRenderer) Draw(screen *ebiten.Image) {
	if r.Unit.Dead {
		return
	}
	px, py := r.Position()
	size := float32(core.TileSize) - 6

	// 身体略小于格子并居中
	bodyWidth := size * 0.7
	bodyHeight := size * 0.7
	drawX := px + (core.TileSize-bodyWidth)/2
	drawY := py + (core.TileSize-bodyHeight)/2 - 2

	vector.DrawFilledRect(screen, drawX, drawY, bodyWidth, bodyHeight, r.Style.BodyColor, false)
	vector.StrokeRect(screen, drawX, drawY, bodyWidth, bodyHeight, 2, r.Style.OutlineColor, false)

	swing := float32(0)
	if r.AnimFrame == 1 {
		swing = 2
	}

	handSize := bodyWidth * 0.25
	vector.FillCircle(screen, drawX-swing-2, drawY+bodyHeight*0.6, handSize, r.Style.HandColor, false)
	vector.FillCircle(screen, drawX+bodyWidth+swing+2, drawY+bodyHeight*0.6, handSize, r.Style.HandColor, false)

	footSize := bodyWidth * 0.3
	vector.DrawFilledRect(screen, drawX+bodyWidth*0.2-swing, drawY+bodyHeight, footSize, footSize*0.6, r.Style.ShoeColor, false)
	vector.DrawFilledRect(screen, drawX+bodyWidth*0.6+swing, drawY+bodyHeight, footSize, footSize*0.6, r.Style.ShoeColor, false)

	// 眼睛跟随朝向
	eyeSize := bodyWidth * 0.15
	eyeY := drawY + bodyHeight*0.3 + float32(r.Facing.Y*2)
	eyeShift := float32(r.Facing.X) * bodyWidth * 0.1
	leftX := drawX + bodyWidth*0.3 + eyeShift
	rightX := drawX + bodyWidth*0.7 + eyeShift

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	vector.FillCircle(screen, leftX, eyeY, eyeSize, white, false)
	vector.FillCircle(screen, rightX, eyeY, eyeSize, white, false)
	vector.FillCircle(screen, leftX, eyeY, eyeSize*0.5, black, false)
	vector.FillCircle(screen, rightX, eyeY, eyeSize*0.5, black, false)
}
