package server

import (
	"fmt"

	"bomberai/pkg/protocol"
)

// DecodePacket 解析服务器收到的数据包
func DecodePacket(data []byte) (*ServerEvent, error) {
	msg, err := protocol.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("解析包失败: %w", err)
	}

	switch m := msg.(type) {
	case *protocol.Hello:
		return &ServerEvent{
			Kind:  EventHello,
			Hello: &HelloEvent{ClientName: m.ClientName, Preset: m.Preset},
		}, nil

	case *protocol.Reconnect:
		return &ServerEvent{
			Kind:      EventReconnect,
			Reconnect: &ReconnectEvent{SessionToken: m.Token},
		}, nil

	case *protocol.PlanRequest:
		return &ServerEvent{
			Kind: EventPlan,
			Plan: &PlanEvent{Seq: m.Seq, Snapshot: m.Snapshot, UnitIDs: m.UnitIDs},
		}, nil

	case *protocol.Ping:
		return &ServerEvent{
			Kind: EventPing,
			Ping: &PingEvent{ClientTime: m.ClientTime},
		}, nil

	case *protocol.Pong:
		return &ServerEvent{
			Kind: EventPong,
			Pong: &PongEvent{ClientTime: m.ClientTime, ServerTime: m.ServerTime},
		}, nil
	}

	// 服务器只会发出的消息（Welcome、PlanResponse、Error）不接受
	return nil, fmt.Errorf("%w: 客户端不应发送 %s", protocol.ErrUnknownMessage, msg.Type())
}

// encodeError 生成错误响应数据包
func encodeError(code protocol.ErrorCode, message string, seq uint32) []byte {
	return protocol.Marshal(&protocol.Error{Code: code, Message: message, Seq: seq})
}
