package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"bomberai/pkg/core"
	"bomberai/pkg/protocol"
)

const dialTimeout = 5 * time.Second

// Client 规划服务的同步客户端，宿主引擎每帧调用 Plan
// 等待响应期间收到的服务端 Ping 会自动回复
type Client struct {
	conn    net.Conn
	timeout time.Duration

	mu        sync.Mutex
	seq       uint32
	sessionID string
	token     string
}

// Dial 连接规划服务
func Dial(proto, addr string) (*Client, error) {
	conn, err := dial(proto, addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("连接 %s 失败: %w", addr, err)
	}
	return &Client{conn: conn, timeout: readTimeout}, nil
}

// Hello 建立新会话
func (c *Client) Hello(name, preset string) (*protocol.Welcome, error) {
	return c.welcome(&protocol.Hello{ClientName: name, Preset: preset})
}

// Reconnect 用 Token 恢复会话
func (c *Client) Reconnect(token string) (*protocol.Welcome, error) {
	return c.welcome(&protocol.Reconnect{Token: token})
}

func (c *Client) welcome(msg protocol.Message) (*protocol.Welcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.roundTrip(msg, protocol.MessageWelcome)
	if err != nil {
		return nil, err
	}
	w := resp.(*protocol.Welcome)
	c.sessionID = w.SessionID
	c.token = w.Token
	return w, nil
}

// Plan 请求为 unitIDs 各规划一步
func (c *Client) Plan(snapshot core.Snapshot, unitIDs ...int) (*protocol.PlanResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	req := &protocol.PlanRequest{Seq: c.seq, Snapshot: snapshot, UnitIDs: unitIDs}
	resp, err := c.roundTrip(req, protocol.MessagePlanResponse)
	if err != nil {
		return nil, err
	}
	return resp.(*protocol.PlanResponse), nil
}

// Ping 测量往返时间
func (c *Client) Ping() (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	if _, err := c.roundTrip(&protocol.Ping{ClientTime: start.UnixMilli()}, protocol.MessagePong); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// SessionID 当前会话 ID
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Token 最近一次 Welcome 下发的 Token
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Close 关闭连接
func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip 发送请求并等待指定类型的响应，服务端 Error 作为 *protocol.Error 返回
func (c *Client) roundTrip(msg protocol.Message, want protocol.MessageType) (protocol.Message, error) {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := protocol.WriteFrame(c.conn, protocol.Marshal(msg)); err != nil {
		return nil, fmt.Errorf("发送 %s 失败: %w", msg.Type(), err)
	}

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.timeout))
		data, err := protocol.ReadFrame(c.conn)
		if err != nil {
			return nil, fmt.Errorf("读取响应失败: %w", err)
		}
		resp, err := protocol.Unmarshal(data)
		if err != nil {
			return nil, err
		}

		switch m := resp.(type) {
		case *protocol.Ping:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			pong := &protocol.Pong{ClientTime: m.ClientTime, ServerTime: time.Now().UnixMilli()}
			if err := protocol.WriteFrame(c.conn, protocol.Marshal(pong)); err != nil {
				return nil, fmt.Errorf("回复心跳失败: %w", err)
			}
			continue
		case *protocol.Error:
			return nil, m
		}

		if resp.Type() != want {
			return nil, fmt.Errorf("%w: 期望 %s，收到 %s", errUnexpectedResponse, want, resp.Type())
		}
		return resp, nil
	}
}

var errUnexpectedResponse = errors.New("响应类型不符")
