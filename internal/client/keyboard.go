package client

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"bomberai/pkg/core"
)

// ControlScheme 按键方案
type ControlScheme int

const (
	ControlWASD  ControlScheme = iota // WASD + 空格键
	ControlArrow                      // 方向键+回车键
)

func (c ControlScheme) String() string {
	switch c {
	case ControlWASD:
		return "WASD+Space"
	case ControlArrow:
		return "Arrows+Enter"
	}
	return "Unknown"
}

type keyBinding struct {
	up, down, left, right, bomb ebiten.Key
}

var bindings = map[ControlScheme]keyBinding{
	ControlWASD:  {ebiten.KeyW, ebiten.KeyS, ebiten.KeyA, ebiten.KeyD, ebiten.KeySpace},
	ControlArrow: {ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyEnter},
}

// Keyboard 键盘输入，驱动玩家单位的 PlayerController
// 每帧先 Poll 再规划，同一帧内 Input 返回相同结果
type Keyboard struct {
	Scheme ControlScheme
	last   core.Input
}

// NewKeyboard 创建键盘输入
func NewKeyboard(scheme ControlScheme) *Keyboard {
	return &Keyboard{Scheme: scheme}
}

// Poll 读取本帧按键状态
func (k *Keyboard) Poll() {
	b, ok := bindings[k.Scheme]
	if !ok {
		b = bindings[ControlWASD]
	}
	k.last = core.Input{
		Up:    ebiten.IsKeyPressed(b.up),
		Down:  ebiten.IsKeyPressed(b.down),
		Left:  ebiten.IsKeyPressed(b.left),
		Right: ebiten.IsKeyPressed(b.right),
		// 炸弹只在按下的那一帧生效
		Bomb: inpututil.IsKeyJustPressed(b.bomb),
	}
}

// Input 实现 ai.InputSource
func (k *Keyboard) Input() core.Input {
	return k.last
}
