package client

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"bomberai/pkg/core"
)

// BombRenderer 炸弹渲染器
type BombRenderer struct {
	Bomb  *core.Bomb
	Rules core.Rules
}

// Draw 绘制未爆炸的炸弹
func (b *BombRenderer) Draw(screen *ebiten.Image) {
	bomb := b.Bomb
	if bomb.Exploded {
		return
	}
	cx, cy := cellCenter(bomb.Cell)

	elapsedFrames := b.Rules.FuseFrames - bomb.FuseLeft
	if elapsedFrames < 0 {
		elapsedFrames = 0
	}
	ratio := 0.0
	if b.Rules.FuseFrames > 0 {
		ratio = math.Min(float64(elapsedFrames)/float64(b.Rules.FuseFrames), 1)
	}

	radius := float32(12)

	// 根据时间闪烁
	blink := math.Sin(float64(elapsedFrames) * 0.1)
	alpha := uint8(200 + 55*blink)

	vector.FillCircle(screen, cx, cy, radius, color.RGBA{0, 0, 0, alpha}, false)
	vector.StrokeCircle(screen, cx, cy, radius, 2, color.RGBA{50, 50, 50, 255}, false)

	// 引线随时间变短
	fuseLength := float32(15 * (1 - ratio))
	if fuseLength > 0 {
		fuseX := cx - radius*0.5
		fuseY := cy - radius
		vector.StrokeLine(screen, fuseX, fuseY, fuseX-fuseLength*0.5, fuseY-fuseLength,
			2, colornames.Saddlebrown, false)

		if blink > 0 {
			sparkColor := color.RGBA{255, uint8(100 + 155*blink), 0, 255}
			vector.FillCircle(screen, fuseX-fuseLength*0.5, fuseY-fuseLength, 3, sparkColor, false)
		}
	}

	// 接近爆炸时的警告圈
	if ratio > 0.7 {
		warningAlpha := uint8((ratio - 0.7) / 0.3 * 100)
		warningRadius := radius + float32(10*(ratio-0.7)/0.3)
		vector.StrokeCircle(screen, cx, cy, warningRadius, 2, color.RGBA{255, 0, 0, warningAlpha}, false)
	}
}

// ExplosionRenderer 已爆炸炸弹的火焰
type ExplosionRenderer struct {
	Bomb  *core.Bomb
	Rules core.Rules
}

// Draw 绘制伤害窗口内的激活危险区
func (e *ExplosionRenderer) Draw(screen *ebiten.Image) {
	bomb := e.Bomb
	if !bomb.Exploded {
		return
	}
	ratio := 0.0
	if e.Rules.DamageFrames > 0 {
		ratio = 1 - float64(bomb.DamageLeft)/float64(e.Rules.DamageFrames)
	}
	ratio = math.Max(0, math.Min(ratio, 1))

	alpha := uint8(255 * (1 - ratio))
	var fire color.RGBA
	switch {
	case ratio < 0.3:
		fire = color.RGBA{255, 255, 0, alpha}
	case ratio < 0.6:
		fire = color.RGBA{255, 165, 0, alpha}
	default:
		fire = color.RGBA{255, 0, 0, alpha}
	}

	// 从中心扩散
	scale := float32(0.3 + 0.7*math.Min(ratio*2, 1.0))
	offset := float32(core.TileSize) * (1 - scale) / 2
	size := float32(core.TileSize) * scale

	for _, c := range bomb.ActiveCells() {
		px := float32(c.X * core.TileSize)
		py := float32(c.Y * core.TileSize)
		vector.DrawFilledRect(screen, px+offset, py+offset, size, size, fire, false)

		if ratio < 0.5 {
			innerAlpha := uint8(200 * (1 - ratio*2))
			innerScale := scale * 0.6
			innerOffset := float32(core.TileSize) * (1 - innerScale) / 2
			innerSize := float32(core.TileSize) * innerScale
			vector.DrawFilledRect(screen, px+innerOffset, py+innerOffset, innerSize, innerSize,
				color.RGBA{255, 255, 255, innerAlpha}, false)
		}
		vector.StrokeRect(screen, px+offset, py+offset, size, size, 2, color.RGBA{255, 100, 0, alpha}, false)
	}
}

// drawDangerZones 未爆炸炸弹的激活危险区，半透明标出
func drawDangerZones(screen *ebiten.Image, bombs []*core.Bomb) {
	shade := color.RGBA{255, 230, 0, 70}
	for _, b := range bombs {
		if b.Exploded {
			continue
		}
		for _, c := range b.ActiveCells() {
			px := float32(c.X * core.TileSize)
			py := float32(c.Y * core.TileSize)
			vector.DrawFilledRect(screen, px, py, core.TileSize, core.TileSize, shade, false)
		}
	}
}
