package client

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bomberai/pkg/core"
)

// MapRenderer 地图渲染器
type MapRenderer struct {
	Game *core.Game
}

// NewMapRenderer 创建地图渲染器
func NewMapRenderer(game *core.Game) *MapRenderer {
	return &MapRenderer{Game: game}
}

// Draw 绘制地图和道具
func (m *MapRenderer) Draw(screen *ebiten.Image) {
	gm := m.Game.Map
	for y := 0; y < gm.Height; y++ {
		for x := 0; x < gm.Width; x++ {
			px := float32(x * core.TileSize)
			py := float32(y * core.TileSize)

			tile := gm.GetTile(x, y)
			var c color.Color
			switch tile {
			case core.TileEmpty:
				c = color.RGBA{34, 139, 34, 255} // 草地绿
			case core.TileWall:
				c = color.RGBA{80, 80, 80, 255} // 灰色墙
			case core.TileBrick:
				c = color.RGBA{205, 133, 63, 255} // 砖块棕色
			}

			vector.DrawFilledRect(screen, px, py, core.TileSize, core.TileSize, c, false)
			vector.StrokeRect(screen, px, py, core.TileSize, core.TileSize, 1, color.RGBA{0, 0, 0, 100}, false)

			switch tile {
			case core.TileBrick:
				// 横线模拟砖块纹理
				for i := 0; i < 3; i++ {
					lineY := py + float32(i*10+5)
					vector.StrokeLine(screen, px+2, lineY, px+core.TileSize-2, lineY, 1,
						color.RGBA{180, 118, 53, 255}, false)
				}
			case core.TileWall:
				vector.StrokeLine(screen, px+core.TileSize/2, py+5, px+core.TileSize/2, py+core.TileSize-5,
					2, color.RGBA{60, 60, 60, 255}, false)
				vector.StrokeLine(screen, px+5, py+core.TileSize/2, px+core.TileSize-5, py+core.TileSize/2,
					2, color.RGBA{60, 60, 60, 255}, false)
			}
		}
	}

	for c, p := range m.Game.PowerUps {
		cx, cy := cellCenter(c)
		clr := color.RGBA{255, 215, 0, 255}
		if p == core.PowerUpExtraRange {
			clr = color.RGBA{0, 200, 255, 255}
		}
		vector.FillCircle(screen, cx, cy, 8, clr, false)
		vector.StrokeCircle(screen, cx, cy, 8, 2, color.RGBA{0, 0, 0, 200}, false)
	}
}

// cellCenter 格子中心的像素坐标
func cellCenter(c core.Cell) (float32, float32) {
	half := float32(core.TileSize) / 2
	return float32(c.X*core.TileSize) + half, float32(c.Y*core.TileSize) + half
}
