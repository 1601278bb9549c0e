package ai

// State 单位规划状态机，每次规划都会重新进入
//
//	Idle → Scanning → {Moving | PlacingBomb | Escaping | Stationary}
type State int

const (
	StateIdle State = iota
	StateScanning
	StateMoving
	StatePlacingBomb
	StateEscaping
	StateStationary
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateScanning:
		return "Scanning"
	case StateMoving:
		return "Moving"
	case StatePlacingBomb:
		return "PlacingBomb"
	case StateEscaping:
		return "Escaping"
	case StateStationary:
		return "Stationary"
	}
	return "Unknown"
}
