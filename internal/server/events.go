package server

import (
	"bomberai/pkg/core"
)

type EventKind int

const (
	EventUnknown EventKind = iota
	EventHello
	EventReconnect
	EventPlan
	EventPing
	EventPong
)

func (k EventKind) String() string {
	switch k {
	case EventHello:
		return "Hello"
	case EventReconnect:
		return "Reconnect"
	case EventPlan:
		return "Plan"
	case EventPing:
		return "Ping"
	case EventPong:
		return "Pong"
	}
	return "Unknown"
}

type HelloEvent struct {
	ClientName string
	Preset     string
}

type ReconnectEvent struct {
	SessionToken string
}

type PlanEvent struct {
	Seq      uint32
	Snapshot core.Snapshot
	UnitIDs  []int
}

type PingEvent struct {
	ClientTime int64
}

type PongEvent struct {
	ClientTime int64
	ServerTime int64
}

type ServerEvent struct {
	Kind      EventKind
	Hello     *HelloEvent
	Reconnect *ReconnectEvent
	Plan      *PlanEvent
	Ping      *PingEvent
	Pong      *PongEvent
}
