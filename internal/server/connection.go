package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"bomberai/pkg/protocol"
)

const (
	readTimeout  = heartbeatTimeout // 读取超时
	writeTimeout = 1 * time.Second  // 写入超时
)

var (
	ErrSendQueueFull    = errors.New("发送队列满")
	ErrConnectionClosed = errors.New("连接已关闭")
)

// Connection 表示一个宿主引擎连接
type Connection struct {
	conn    net.Conn
	server  *PlannerServer
	session atomic.Pointer[Session]
	limiter *rate.Limiter

	// 发送队列
	sendChan chan []byte
	closeCh  chan struct{}
	closed   bool
	closeMu  sync.Mutex

	lastRecvTime atomic.Value
	lastPingTime atomic.Value
	rtt          atomic.Int64
}

// NewConnection 创建新连接，连接到服务器上
func NewConnection(conn net.Conn, server *PlannerServer) *Connection {
	c := &Connection{
		conn:     conn,
		server:   server,
		limiter:  rate.NewLimiter(rate.Limit(server.cfg.Server.RequestsPerSecond), server.cfg.Server.Burst),
		sendChan: make(chan []byte, 256), // 发送队列缓冲区
		closeCh:  make(chan struct{}),
	}
	c.lastRecvTime.Store(time.Now())
	c.lastPingTime.Store(time.Time{})
	return c
}

// Handle 处理连接
func (c *Connection) Handle(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	log.Printf("%s: 连接处理开始", c)

	wg.Add(1)
	go c.startHeartbeat(ctx, wg)

	// 启动发送循环
	wg.Add(1)
	go c.sendLoop(ctx, wg)

	// 启动接收循环
	wg.Add(1)
	go c.receiveLoop(ctx, wg)

	// 等待上下文取消或连接关闭
	select {
	case <-ctx.Done():
	case <-c.closeCh:
	}

	c.Close()
}

// Close 关闭连接，会话进入断线保留期
func (c *Connection) Close() {
	c.closeWithNotify(true)
}

// CloseWithoutNotify 关闭连接但不改动会话（会话已被新连接接管）
func (c *Connection) CloseWithoutNotify() {
	c.closeWithNotify(false)
}

func (c *Connection) closeWithNotify(notify bool) {
	c.closeMu.Lock()
	if c.closed {
		c.closeMu.Unlock()
		return
	}

	c.closed = true
	close(c.closeCh)

	// 关闭网络连接
	if c.conn != nil {
		c.conn.Close()
	}

	// 关闭发送通道
	close(c.sendChan)
	c.closeMu.Unlock()

	if notify {
		if s := c.Session(); s != nil {
			c.server.sessions.Detach(s, c)
		}
	}

	log.Printf("%s: 连接已关闭", c)
}

// Send 发送数据（异步）
func (c *Connection) Send(data []byte) error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.sendChan <- data:
		return nil
	default:
		return ErrSendQueueFull
	}
}

func (c *Connection) sendMessage(msg protocol.Message) {
	if err := c.Send(protocol.Marshal(msg)); err != nil {
		log.Printf("%s: 发送 %s 失败: %v", c, msg.Type(), err)
	}
}

func (c *Connection) sendError(code protocol.ErrorCode, message string, seq uint32) {
	if err := c.Send(encodeError(code, message, seq)); err != nil {
		log.Printf("%s: 发送错误响应失败: %v", c, err)
	}
}

// sendLoop 发送循环
func (c *Connection) sendLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-c.sendChan:
			if !ok {
				// 通道已关闭
				return
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := protocol.WriteFrame(c.conn, data); err != nil {
				log.Printf("%s: 发送数据失败: %v", c, err)
				c.Close()
				return
			}
		}
	}
}

// receiveLoop 接收循环
func (c *Connection) receiveLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		default:
			_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
			data, err := protocol.ReadFrame(c.conn)
			if err != nil {
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() {
					log.Printf("%s: 读取超时", c)
				} else if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
					log.Printf("%s: 读取数据失败: %v", c, err)
				}
				c.Close()
				return
			}

			if len(data) == 0 {
				log.Printf("%s: 收到空消息", c)
				continue
			}

			// 处理消息
			c.onMessageReceived()
			if err := c.handleMessage(data); err != nil {
				log.Printf("%s: 处理消息失败: %v", c, err)
			}
		}
	}
}

// handleMessage 处理接收到的消息
func (c *Connection) handleMessage(data []byte) error {
	event, err := DecodePacket(data)
	if err != nil {
		c.sendError(protocol.ErrorBadRequest, err.Error(), 0)
		return fmt.Errorf("反序列化失败: %w", err)
	}

	switch event.Kind {
	case EventHello:
		if c.Session() != nil {
			c.sendError(protocol.ErrorBadRequest, "会话已建立", 0)
			return fmt.Errorf("重复 Hello")
		}
		s, err := c.server.sessions.Create(event.Hello.ClientName, event.Hello.Preset)
		if err != nil {
			code := protocol.ErrorBadRequest
			if errors.Is(err, ErrTooManySessions) {
				code = protocol.ErrorInternal
			}
			c.sendError(code, err.Error(), 0)
			return fmt.Errorf("创建会话失败: %w", err)
		}
		c.attach(s, false)

	case EventReconnect:
		s, err := c.resume(event.Reconnect.SessionToken)
		if err != nil {
			code := protocol.ErrorNoSession
			if errors.Is(err, ErrSessionExpired) {
				code = protocol.ErrorSessionExpired
			}
			c.sendError(code, err.Error(), 0)
			return fmt.Errorf("重连失败: %w", err)
		}
		c.attach(s, true)

	case EventPlan:
		c.handlePlan(event.Plan)

	case EventPing:
		c.sendMessage(&protocol.Pong{ClientTime: event.Ping.ClientTime, ServerTime: time.Now().UnixMilli()})

	case EventPong:
		c.handlePong(event.Pong)

	default:
		return fmt.Errorf("未知消息类型")
	}

	return nil
}

func (c *Connection) resume(token string) (*Session, error) {
	id, err := VerifySessionToken(token)
	if err != nil {
		return nil, err
	}
	return c.server.sessions.Resume(id)
}

// attach 绑定会话并回复 Welcome，旧连接直接关闭
func (c *Connection) attach(s *Session, resumed bool) {
	token, err := GenerateSessionToken(s.ID, TokenTTL)
	if err != nil {
		c.sendError(protocol.ErrorInternal, "生成 Token 失败", 0)
		log.Printf("%s: 生成 Token 失败: %v", c, err)
		return
	}

	c.session.Store(s)
	if prev := c.server.sessions.Attach(s, c); prev != nil && prev != c {
		log.Printf("会话 %s 被新连接接管，关闭 %s", s.ID, prev)
		prev.CloseWithoutNotify()
	}
	if resumed {
		log.Printf("%s: 恢复会话", c)
	}
	c.sendMessage(&protocol.Welcome{SessionID: s.ID, Token: token, Resumed: resumed})
}

func (c *Connection) handlePlan(ev *PlanEvent) {
	s := c.Session()
	if s == nil {
		c.sendError(protocol.ErrorNoSession, "请先发送 Hello", ev.Seq)
		return
	}
	if !c.limiter.Allow() {
		log.Printf("%s: 请求过于频繁，丢弃 seq=%d", c, ev.Seq)
		c.sendError(protocol.ErrorRateLimited, "请求过于频繁", ev.Seq)
		return
	}

	resp, err := s.Plan(ev)
	if err != nil {
		log.Printf("%s: 规划失败 seq=%d: %v", c, ev.Seq, err)
		c.sendError(protocol.ErrorBadRequest, err.Error(), ev.Seq)
		return
	}
	c.sendMessage(resp)
}

// Session 当前绑定的会话，未建立时为 nil
func (c *Connection) Session() *Session {
	return c.session.Load()
}

// RTT 最近一次心跳往返时间（毫秒）
func (c *Connection) RTT() int64 {
	return c.rtt.Load()
}

// String 返回连接的字符串表示
func (c *Connection) String() string {
	if s := c.Session(); s != nil {
		return fmt.Sprintf("Connection{%s, %s}", s.ID, c.conn.RemoteAddr())
	}
	return fmt.Sprintf("Connection{%s}", c.conn.RemoteAddr())
}

const (
	heartbeatInterval = 5 * time.Second
	heartbeatTimeout  = 15 * time.Second
)

func (c *Connection) startHeartbeat(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closeCh:
			return
		case <-ticker.C:
			lastRecv, _ := c.lastRecvTime.Load().(time.Time)
			if !lastRecv.IsZero() && time.Since(lastRecv) > heartbeatTimeout {
				log.Printf("%s: 心跳超时", c)
				c.Close()
				return
			}
			c.sendPing()
		}
	}
}

func (c *Connection) sendPing() {
	c.lastPingTime.Store(time.Now())
	_ = c.Send(protocol.Marshal(&protocol.Ping{ClientTime: time.Now().UnixMilli()}))
}

func (c *Connection) handlePong(pong *PongEvent) {
	if pong == nil || pong.ClientTime <= 0 {
		return
	}
	rtt := time.Now().UnixMilli() - pong.ClientTime
	c.rtt.Store(rtt)
}

func (c *Connection) onMessageReceived() {
	c.lastRecvTime.Store(time.Now())
}
