package core

// Input 表示一帧内玩家的输入
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Bomb  bool // 本帧刚按下放置炸弹
}

// IsIdle 没有任何移动输入
func (in Input) IsIdle() bool {
	return !in.Up && !in.Down && !in.Left && !in.Right
}

// MoveDirections 输入对应的可移动方向，横向在前、纵向在后
// 相反方向同时按下时互相抵消
func (in Input) MoveDirections() []Cell {
	dirs := make([]Cell, 0, 2)
	switch {
	case in.Right && !in.Left:
		dirs = append(dirs, DirRight)
	case in.Left && !in.Right:
		dirs = append(dirs, DirLeft)
	}
	switch {
	case in.Up && !in.Down:
		dirs = append(dirs, DirUp)
	case in.Down && !in.Up:
		dirs = append(dirs, DirDown)
	}
	return dirs
}
