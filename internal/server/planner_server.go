// Package server 是规划服务：宿主引擎通过 TCP 或 KCP 发送世界快照，
// 服务端为指定单位规划一步并返回决策。
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"

	"bomberai/internal/config"
)

// PlannerServer 规划服务器
type PlannerServer struct {
	cfg      config.Config
	sessions *SessionManager

	// 网络
	listener ServerListener

	// 控制
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// NewPlannerServer 创建新的规划服务器
func NewPlannerServer(cfg config.Config) *PlannerServer {
	ctx, cancel := context.WithCancel(context.Background())

	return &PlannerServer{
		cfg:      cfg,
		sessions: NewSessionManager(ctx, cfg),
		ctx:      ctx,
		cancel:   cancel,
		shutdown: make(chan struct{}),
	}
}

// Listen 开始监听并接受连接，不阻塞
func (s *PlannerServer) Listen() error {
	listener, err := newListener(s.cfg.Server.Proto, s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("监听失败: %w", err)
	}
	s.listener = listener

	log.Printf("服务器监听中: %s (%s)", listener.Addr(), s.cfg.Server.Proto)

	s.sessions.Run()

	// 启动连接接受循环
	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Start 启动服务器并阻塞到 Shutdown
func (s *PlannerServer) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}

	// 等待关闭信号
	<-s.shutdown
	return nil
}

// Addr 实际监听地址，未启动时为 nil
func (s *PlannerServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Sessions 会话管理器
func (s *PlannerServer) Sessions() *SessionManager {
	return s.sessions
}

// Shutdown 优雅关闭服务器
func (s *PlannerServer) Shutdown() {
	s.shutdownOnce.Do(func() {
		log.Println("正在关闭服务器...")

		// 取消上下文
		s.cancel()

		// 关闭监听器
		if s.listener != nil {
			s.listener.Close()
		}

		// 等待所有 goroutine 结束
		s.wg.Wait()

		s.sessions.Shutdown()

		close(s.shutdown)
		log.Println("服务器已关闭")
	})
}

// acceptLoop 接受客户端连接
func (s *PlannerServer) acceptLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			log.Println("停止接受新连接")
			return
		default:
		}

		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return
			default:
				log.Printf("接受连接失败: %v", err)
				continue
			}
		}

		log.Printf("新连接来自: %s", conn.RemoteAddr())

		// 创建连接对象
		connection := NewConnection(conn, s)

		// 启动连接处理
		s.wg.Add(1)
		go connection.Handle(s.ctx, &s.wg)
	}
}
