// Package protocol 定义规划服务的消息和线格式。
//
// 每个数据包是一个 Packet { 1 type, 2 payload }，payload 是对应消息的 protobuf
// 编码。编码直接使用 protowire，不依赖生成代码。
package protocol

import (
	"fmt"

	"bomberai/pkg/ai"
	"bomberai/pkg/core"
)

// MessageType 消息类型
type MessageType int32

const (
	MessageUnknown MessageType = iota
	MessageHello
	MessageWelcome
	MessageReconnect
	MessagePlanRequest
	MessagePlanResponse
	MessagePing
	MessagePong
	MessageError
)

func (t MessageType) String() string {
	switch t {
	case MessageHello:
		return "Hello"
	case MessageWelcome:
		return "Welcome"
	case MessageReconnect:
		return "Reconnect"
	case MessagePlanRequest:
		return "PlanRequest"
	case MessagePlanResponse:
		return "PlanResponse"
	case MessagePing:
		return "Ping"
	case MessagePong:
		return "Pong"
	case MessageError:
		return "Error"
	}
	return fmt.Sprintf("MessageType(%d)", int32(t))
}

// Message 可以放进 Packet 的消息
type Message interface {
	Type() MessageType
	marshal(e *encoder)
	unmarshal(data []byte) error
}

// Hello 新会话 { 1 client_name, 2 preset }
type Hello struct {
	ClientName string
	Preset     string // AI 预设名称，空表示 normal
}

func (*Hello) Type() MessageType { return MessageHello }

func (m *Hello) marshal(e *encoder) {
	e.string(1, m.ClientName)
	e.string(2, m.Preset)
}

func (m *Hello) unmarshal(data []byte) error {
	return decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.ClientName = f.string()
		case 2:
			m.Preset = f.string()
		}
		return nil
	})
}

// Welcome 会话建立或恢复 { 1 session_id, 2 token, 3 resumed }
type Welcome struct {
	SessionID string
	Token     string
	Resumed   bool
}

func (*Welcome) Type() MessageType { return MessageWelcome }

func (m *Welcome) marshal(e *encoder) {
	e.string(1, m.SessionID)
	e.string(2, m.Token)
	e.bool(3, m.Resumed)
}

func (m *Welcome) unmarshal(data []byte) error {
	return decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.SessionID = f.string()
		case 2:
			m.Token = f.string()
		case 3:
			m.Resumed = f.bool()
		}
		return nil
	})
}

// Reconnect 断线重连 { 1 token }
type Reconnect struct {
	Token string
}

func (*Reconnect) Type() MessageType { return MessageReconnect }

func (m *Reconnect) marshal(e *encoder) {
	e.string(1, m.Token)
}

func (m *Reconnect) unmarshal(data []byte) error {
	return decodeFields(data, func(f field) error {
		if f.num == 1 {
			m.Token = f.string()
		}
		return nil
	})
}

// PlanRequest 请求为指定单位规划一步 { 1 seq, 2 snapshot, 3 repeated UnitRef { 1 id } }
type PlanRequest struct {
	Seq      uint32
	Snapshot core.Snapshot
	UnitIDs  []int
}

func (*PlanRequest) Type() MessageType { return MessagePlanRequest }

func (m *PlanRequest) marshal(e *encoder) {
	e.uint(1, uint64(m.Seq))
	e.message(2, func(sub *encoder) { encodeSnapshot(sub, &m.Snapshot) })
	for _, id := range m.UnitIDs {
		// 单位 ID 可能为 0，不能省略
		e.message(3, func(sub *encoder) { sub.int(1, int64(id)) })
	}
}

func (m *PlanRequest) unmarshal(data []byte) error {
	return decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.Seq = uint32(f.u)
		case 2:
			s, err := decodeSnapshot(f.b)
			if err != nil {
				return err
			}
			m.Snapshot = s
		case 3:
			id := 0
			err := decodeFields(f.b, func(f field) error {
				if f.num == 1 {
					id = f.int()
				}
				return nil
			})
			if err != nil {
				return err
			}
			m.UnitIDs = append(m.UnitIDs, id)
		}
		return nil
	})
}

// UnitDecision 单个单位的规划结果
type UnitDecision struct {
	UnitID   int
	Decision ai.Decision
	State    ai.State
}

// PlanResponse 规划结果 { 1 seq, 2 frame, 3 repeated Decision }
type PlanResponse struct {
	Seq       uint32
	Frame     int32
	Decisions []UnitDecision
}

func (*PlanResponse) Type() MessageType { return MessagePlanResponse }

func (m *PlanResponse) marshal(e *encoder) {
	e.uint(1, uint64(m.Seq))
	e.int(2, int64(m.Frame))
	for i := range m.Decisions {
		d := &m.Decisions[i]
		e.message(3, func(sub *encoder) { encodeDecision(sub, d) })
	}
}

func (m *PlanResponse) unmarshal(data []byte) error {
	return decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.Seq = uint32(f.u)
		case 2:
			m.Frame = int32(f.int())
		case 3:
			d, err := decodeDecision(f.b)
			if err != nil {
				return err
			}
			m.Decisions = append(m.Decisions, d)
		}
		return nil
	})
}

// Ping 心跳 { 1 client_time }
type Ping struct {
	ClientTime int64
}

func (*Ping) Type() MessageType { return MessagePing }

func (m *Ping) marshal(e *encoder) {
	e.int(1, m.ClientTime)
}

func (m *Ping) unmarshal(data []byte) error {
	return decodeFields(data, func(f field) error {
		if f.num == 1 {
			m.ClientTime = f.int64()
		}
		return nil
	})
}

// Pong 心跳响应 { 1 client_time, 2 server_time }
type Pong struct {
	ClientTime int64
	ServerTime int64
}

func (*Pong) Type() MessageType { return MessagePong }

func (m *Pong) marshal(e *encoder) {
	e.int(1, m.ClientTime)
	e.int(2, m.ServerTime)
}

func (m *Pong) unmarshal(data []byte) error {
	return decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.ClientTime = f.int64()
		case 2:
			m.ServerTime = f.int64()
		}
		return nil
	})
}

// ErrorCode 错误码
type ErrorCode int32

const (
	ErrorUnknown ErrorCode = iota
	ErrorBadRequest
	ErrorNoSession
	ErrorSessionExpired
	ErrorRateLimited
	ErrorInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorBadRequest:
		return "BadRequest"
	case ErrorNoSession:
		return "NoSession"
	case ErrorSessionExpired:
		return "SessionExpired"
	case ErrorRateLimited:
		return "RateLimited"
	case ErrorInternal:
		return "Internal"
	}
	return "Unknown"
}

// Error 错误响应 { 1 code, 2 message, 3 seq }
type Error struct {
	Code    ErrorCode
	Message string
	Seq     uint32 // 对应的请求序号，没有则为 0
}

func (*Error) Type() MessageType { return MessageError }

func (m *Error) Error() string {
	return fmt.Sprintf("%s: %s", m.Code, m.Message)
}

func (m *Error) marshal(e *encoder) {
	e.int(1, int64(m.Code))
	e.string(2, m.Message)
	e.uint(3, uint64(m.Seq))
}

func (m *Error) unmarshal(data []byte) error {
	return decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.Code = ErrorCode(f.int())
		case 2:
			m.Message = f.string()
		case 3:
			m.Seq = uint32(f.u)
		}
		return nil
	})
}

// newMessage 根据类型创建空消息
func newMessage(t MessageType) (Message, error) {
	switch t {
	case MessageHello:
		return &Hello{}, nil
	case MessageWelcome:
		return &Welcome{}, nil
	case MessageReconnect:
		return &Reconnect{}, nil
	case MessagePlanRequest:
		return &PlanRequest{}, nil
	case MessagePlanResponse:
		return &PlanResponse{}, nil
	case MessagePing:
		return &Ping{}, nil
	case MessagePong:
		return &Pong{}, nil
	case MessageError:
		return &Error{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, t)
}
