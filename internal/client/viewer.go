// Package client 是对局的 ebiten 调试画面：一个键盘玩家和若干 AI 单位，
// 可以叠加显示危险区、躲避足迹和搜索路线。
package client

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"bomberai/internal/arena"
	"bomberai/internal/config"
	"bomberai/pkg/core"
)

const (
	HUDHeight    = 96
	statusFrames = 3 * core.FPS
)

var hudFont = text.NewGoXFace(basicfont.Face7x13)

// Viewer 调试画面（Ebiten 游戏循环）
type Viewer struct {
	cfg      config.Config
	keyboard *Keyboard

	arena         *arena.Arena
	mapRenderer   *MapRenderer
	unitRenderers []*UnitRenderer

	showZones      bool
	showFootprints bool
	paused         bool

	status     string
	statusLeft int
	lastEvent  string
	screenW    int
	screenH    int
}

// NewViewer 按配置创建对局，0 号单位由键盘控制
func NewViewer(cfg config.Config, scheme ControlScheme) (*Viewer, error) {
	v := &Viewer{
		cfg:            cfg,
		keyboard:       NewKeyboard(scheme),
		showZones:      true,
		showFootprints: true,
	}
	if err := v.reset(); err != nil {
		return nil, err
	}
	return v, nil
}

// reset 重新生成地图和单位
func (v *Viewer) reset() error {
	a, err := arena.Build(v.cfg, v.keyboard)
	if err != nil {
		return fmt.Errorf("创建对局失败: %w", err)
	}
	v.arena = a
	v.mapRenderer = NewMapRenderer(a.Game)
	v.unitRenderers = v.unitRenderers[:0]
	for _, u := range a.Game.Units {
		v.unitRenderers = append(v.unitRenderers, NewUnitRenderer(u))
	}
	v.screenW = a.Game.Map.Width * core.TileSize
	v.screenH = a.Game.Map.Height*core.TileSize + HUDHeight
	v.lastEvent = ""
	return nil
}

// ScreenSize 窗口尺寸
func (v *Viewer) ScreenSize() (int, int) {
	return v.screenW, v.screenH
}

// Update 更新对局
func (v *Viewer) Update() error {
	v.handleKeys()
	v.keyboard.Poll()

	if !v.paused {
		for _, e := range v.arena.Tick() {
			v.noteEvent(e)
		}
	}

	for _, r := range v.unitRenderers {
		r.Update()
	}
	if v.statusLeft > 0 {
		v.statusLeft--
	}
	return nil
}

func (v *Viewer) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		v.showZones = !v.showZones
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		v.showFootprints = !v.showFootprints
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.paused = !v.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.copyLog()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if v.cfg.Arena.Seed != 0 {
			v.cfg.Arena.Seed++
		}
		if err := v.reset(); err != nil {
			v.setStatus(err.Error())
		}
	}
}

// copyLog 把决策记录复制到剪贴板
func (v *Viewer) copyLog() {
	entries := v.arena.Log()
	if err := clipboard.WriteAll(v.arena.FormatLog()); err != nil {
		v.setStatus("copy failed: " + err.Error())
		return
	}
	v.setStatus(fmt.Sprintf("copied %d decisions", len(entries)))
}

func (v *Viewer) setStatus(msg string) {
	v.status = msg
	v.statusLeft = statusFrames
}

func (v *Viewer) noteEvent(e core.Event) {
	switch e.Kind {
	case core.EventBombDetonated:
		v.lastEvent = fmt.Sprintf("frame %d: bomb #%d exploded at %s", e.Frame, e.BombID, e.Cell)
	case core.EventUnitKilled:
		v.lastEvent = fmt.Sprintf("frame %d: unit %d killed at %s", e.Frame, e.UnitID, e.Cell)
	case core.EventPowerUpGathered:
		v.lastEvent = fmt.Sprintf("frame %d: unit %d got %s", e.Frame, e.UnitID, e.PowerUp)
	}
}

// Draw 绘制画面
func (v *Viewer) Draw(screen *ebiten.Image) {
	game := v.arena.Game
	v.mapRenderer.Draw(screen)

	if v.showZones {
		drawDangerZones(screen, game.Bombs)
	}
	if v.showFootprints {
		v.drawPlans(screen)
	}

	for _, b := range game.Bombs {
		(&ExplosionRenderer{Bomb: b, Rules: game.Rules}).Draw(screen)
		(&BombRenderer{Bomb: b, Rules: game.Rules}).Draw(screen)
	}
	for _, r := range v.unitRenderers {
		r.Draw(screen)
	}

	v.drawHUD(screen)

	if v.arena.Phase == arena.PhaseOver {
		vector.DrawFilledRect(screen, 0, 0, float32(v.screenW), float32(v.screenH-HUDHeight), color.RGBA{0, 0, 0, 128}, false)
		msg := "DRAW"
		if v.arena.Winner >= 0 {
			msg = fmt.Sprintf("UNIT %d WINS", v.arena.Winner)
		}
		drawText(screen, v.screenW/2-len(msg)*7/2, (v.screenH-HUDHeight)/2, msg, color.White)
	}
}

// drawPlans AI 单位最近的躲避足迹和选中的路线
func (v *Viewer) drawPlans(screen *ebiten.Image) {
	footprints := v.arena.Footprints()
	for _, r := range v.unitRenderers {
		if r.Unit.Dead {
			continue
		}
		clr := r.Style.BodyColor
		clr.A = 160
		if fp, ok := footprints[r.Unit.ID]; ok {
			fp.Each(func(c core.Cell) {
				px := float32(c.X*core.TileSize) + 3
				py := float32(c.Y*core.TileSize) + 3
				vector.StrokeRect(screen, px, py, core.TileSize-6, core.TileSize-6, 2, clr, false)
			})
		}

		p := v.arena.Planner(r.Unit.ID)
		if p == nil || p.LastRoute == nil {
			continue
		}
		prevX, prevY := cellCenter(r.Unit.Cell)
		for _, c := range p.LastRoute.Path {
			cx, cy := cellCenter(c)
			vector.StrokeLine(screen, prevX, prevY, cx, cy, 2, clr, false)
			vector.FillCircle(screen, cx, cy, 3, clr, false)
			prevX, prevY = cx, cy
		}
	}
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	game := v.arena.Game
	top := v.screenH - HUDHeight
	vector.DrawFilledRect(screen, 0, float32(top), float32(v.screenW), HUDHeight, color.RGBA{20, 24, 32, 255}, false)

	y := top + 14
	drawText(screen, 8, y, fmt.Sprintf("frame %d  bombs %d  [%s] Z zones F plans P pause C copy R restart",
		game.Frame, len(game.Bombs), v.keyboard.Scheme), color.RGBA{220, 230, 240, 255})
	y += 16

	for _, r := range v.unitRenderers {
		u := r.Unit
		state := "dead"
		if !u.Dead {
			state = "-"
			if p := v.arena.Planner(u.ID); p != nil {
				state = fmt.Sprintf("%s/%s", p.Kind(), p.State)
			}
		}
		line := fmt.Sprintf("%d %-5s %-18s bombs %d/%d range %d", u.ID, r.Style.Name, state, u.ActiveBombs, u.BombLimit, u.ExplosionRange)
		drawText(screen, 8+(u.ID%2)*(v.screenW/2), y+(u.ID/2)*16, line, r.Style.BodyColor)
	}
	y += 2 * 16

	msg, clr := v.lastEvent, color.RGBA{200, 200, 120, 255}
	if v.statusLeft > 0 {
		msg, clr = v.status, color.RGBA{120, 255, 160, 255}
	}
	if msg != "" {
		drawText(screen, 8, y, msg, clr)
	}
}

// Layout 设置屏幕布局
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.screenW, v.screenH
}

func drawText(screen *ebiten.Image, x, y int, msg string, clr color.Color) {
	options := &text.DrawOptions{}
	options.GeoM.Translate(float64(x), float64(y-11))
	options.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, hudFont, options)
}
