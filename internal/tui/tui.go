// Package tui 在终端里逐帧绘制对局，供 cmd/sim -tui 使用
package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"bomberai/internal/arena"
	"bomberai/pkg/core"
)

var (
	styleFloor  = tcell.StyleDefault
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBrick  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleBomb   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFire   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDanger = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePower  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorSilver)

	unitColors = []tcell.Color{tcell.ColorWhite, tcell.ColorGreen, tcell.ColorRed, tcell.ColorBlue}
)

// Renderer 终端渲染器，地图每格占两列
type Renderer struct {
	screen tcell.Screen
	quit   chan struct{}
	once   sync.Once
}

// New 打开终端
func New() (*Renderer, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("创建终端失败: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("初始化终端失败: %w", err)
	}
	return NewWithScreen(s), nil
}

// NewWithScreen 使用已初始化的 screen
func NewWithScreen(s tcell.Screen) *Renderer {
	return &Renderer{screen: s, quit: make(chan struct{})}
}

// Listen 读取按键，Esc、q 或 Ctrl+C 时关闭 Quit 通道
func (r *Renderer) Listen() {
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC || key.Rune() == 'q' {
					r.once.Do(func() { close(r.quit) })
					return
				}
			}
		}
	}()
}

// Quit 用户要求退出时关闭
func (r *Renderer) Quit() <-chan struct{} {
	return r.quit
}

// Close 恢复终端
func (r *Renderer) Close() {
	r.screen.Fini()
}

// Draw 绘制一帧
func (r *Renderer) Draw(a *arena.Arena) {
	g := a.Game
	r.screen.Clear()

	for y := 0; y < g.Map.Height; y++ {
		for x := 0; x < g.Map.Width; x++ {
			ch, style := Glyph(g, core.Cell{X: x, Y: y})
			r.screen.SetContent(2*x, y, ch, nil, style)
			r.screen.SetContent(2*x+1, y, ' ', nil, style)
		}
	}
	for _, u := range g.Units {
		if u.Dead {
			continue
		}
		style := tcell.StyleDefault.Foreground(unitColors[u.ID%len(unitColors)]).Bold(true)
		r.screen.SetContent(2*u.Cell.X, u.Cell.Y, rune('0'+u.ID%10), nil, style)
	}

	y := g.Map.Height + 1
	r.text(0, y, fmt.Sprintf("frame %d  bombs %d  (q to quit)", g.Frame, len(g.Bombs)))
	for _, u := range g.Units {
		y++
		state := "dead"
		if !u.Dead {
			if p := a.Planner(u.ID); p != nil {
				state = fmt.Sprintf("%s/%s", p.Kind(), p.State)
			}
		}
		r.text(0, y, fmt.Sprintf("unit %d %-20s bombs %d/%d range %d", u.ID, state, u.ActiveBombs, u.BombLimit, u.ExplosionRange))
	}
	if a.Phase == arena.PhaseOver {
		y++
		if a.Winner >= 0 {
			r.text(0, y, fmt.Sprintf("game over, unit %d wins", a.Winner))
		} else {
			r.text(0, y, "game over, draw")
		}
	}
	r.screen.Show()
}

func (r *Renderer) text(x, y int, s string) {
	for i, ch := range s {
		r.screen.SetContent(x+i, y, ch, nil, styleText)
	}
}

// Glyph 格子上最显眼的东西：火焰、炸弹、道具、危险区、地形
func Glyph(g *core.Game, c core.Cell) (rune, tcell.Style) {
	tags := g.Query(c)
	switch {
	case tags.Has(core.TagLethalZone):
		return '*', styleFire
	case tags.Has(core.TagBomb):
		return 'o', styleBomb
	case tags.Has(core.TagIndestructible):
		return '#', styleWall
	case tags.Has(core.TagDestructible):
		return '%', styleBrick
	case tags.Has(core.TagPowerUp):
		return '+', stylePower
	case tags.Has(core.TagActiveZone):
		return '.', styleDanger
	}
	return ' ', styleFloor
}
