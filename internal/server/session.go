package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"bomberai/internal/config"
	"bomberai/pkg/ai"
	"bomberai/pkg/core"
	"bomberai/pkg/protocol"
)

var (
	ErrSessionExpired  = errors.New("会话已过期")
	ErrTooManySessions = errors.New("会话数量已达上限")
	ErrUnknownUnit     = errors.New("快照中没有该单位")
)

// Session 一个宿主引擎的规划会话
// 每个单位一个规划器，跨请求保留节点状态
type Session struct {
	ID         string
	ClientName string

	config *ai.AIConfig
	rules  core.Rules
	seed   int64

	mu       sync.Mutex
	planners map[int]*ai.Planner
	conn     *Connection // nil 表示连接已断开
	lastSeen time.Time
}

// Plan 在快照恢复出的世界上为请求的单位各规划一步
func (s *Session) Plan(ev *PlanEvent) (*protocol.PlanResponse, error) {
	game, err := core.NewGameFromSnapshot(ev.Snapshot, s.rules)
	if err != nil {
		return nil, fmt.Errorf("恢复快照失败: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &protocol.PlanResponse{
		Seq:       ev.Seq,
		Frame:     ev.Snapshot.Frame,
		Decisions: make([]protocol.UnitDecision, 0, len(ev.UnitIDs)),
	}
	// 先检查全部单位，避免部分规划器已经前进而响应却失败
	for _, id := range ev.UnitIDs {
		if game.Unit(id) == nil {
			return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, id)
		}
	}
	for _, id := range ev.UnitIDs {
		u := game.Unit(id)
		if u.Dead {
			delete(s.planners, id)
			resp.Decisions = append(resp.Decisions, protocol.UnitDecision{UnitID: id})
			continue
		}
		p := s.planner(id)
		d := p.Plan(game, ai.NewUnitState(u, game))
		resp.Decisions = append(resp.Decisions, protocol.UnitDecision{UnitID: id, Decision: d, State: p.State})
	}
	s.lastSeen = time.Now()
	return resp, nil
}

// Planners 当前有规划器的单位数量
func (s *Session) Planners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.planners)
}

func (s *Session) planner(unitID int) *ai.Planner {
	p, ok := s.planners[unitID]
	if !ok {
		p = ai.NewPlanner(unitID, ai.NewAIController(), s.config, s.seed)
		s.planners[unitID] = p
	}
	return p
}

// SessionManager 管理所有会话，断开的会话保留 ttl 后回收
type SessionManager struct {
	ctx         context.Context
	ttl         time.Duration
	maxSessions int
	rules       core.Rules
	ai          config.AIConfig

	sessions map[string]*Session
	mu       sync.RWMutex
	wg       sync.WaitGroup
	shutdown chan struct{}
	once     sync.Once

	now func() time.Time
}

// NewSessionManager 创建会话管理器
func NewSessionManager(ctx context.Context, cfg config.Config) *SessionManager {
	return &SessionManager{
		ctx:         ctx,
		ttl:         cfg.Server.SessionTTL,
		maxSessions: cfg.Server.MaxSessions,
		rules:       cfg.Arena.Rules(),
		ai:          cfg.AI,
		sessions:    make(map[string]*Session),
		shutdown:    make(chan struct{}),
		now:         time.Now,
	}
}

// Run 启动过期会话清理协程
func (m *SessionManager) Run() {
	m.wg.Add(1)
	go m.cleanupLoop()
}

// cleanupLoop 定期清理过期会话
func (m *SessionManager) cleanupLoop() {
	defer m.wg.Done()

	interval := m.ttl / 2
	if interval <= 0 || interval > 30*time.Second {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.shutdown:
			return
		case <-ticker.C:
			if n := m.expire(); n > 0 {
				log.Printf("清理过期会话 %d 个，剩余 %d 个", n, m.Count())
			}
		}
	}
}

// expire 删除断开超过 ttl 的会话，返回删除数量
func (m *SessionManager) expire() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.conn == nil && now.Sub(s.lastSeen) > m.ttl
		s.mu.Unlock()
		if stale {
			log.Printf("会话 %s 已过期", id)
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Create 新建会话，preset 为空时使用配置中的 AI 预设
func (m *SessionManager) Create(clientName, preset string) (*Session, error) {
	aiCfg := m.ai
	if preset != "" {
		aiCfg.Preset = preset
	}
	built, err := aiCfg.Build()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("%w (%d)", ErrTooManySessions, m.maxSessions)
	}

	now := m.now()
	s := &Session{
		ID:         uuid.NewString(),
		ClientName: clientName,
		config:     built,
		rules:      m.rules,
		seed:       now.UnixNano(),
		planners:   make(map[int]*ai.Planner),
		lastSeen:   now,
	}
	m.sessions[s.ID] = s
	log.Printf("创建会话 %s (%s, 预设 %q)", s.ID, clientName, aiCfg.Preset)
	return s, nil
}

// Get 按 ID 查找会话
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Resume 恢复会话，会话已被回收时返回 ErrSessionExpired
func (m *SessionManager) Resume(id string) (*Session, error) {
	s, ok := m.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionExpired, id)
	}
	return s, nil
}

// Attach 把连接绑定到会话，返回之前绑定的连接
func (m *SessionManager) Attach(s *Session, c *Connection) *Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.conn
	s.conn = c
	s.lastSeen = m.now()
	return prev
}

// Detach 连接断开，会话开始计时；会话已绑定到其他连接时不处理
func (m *SessionManager) Detach(s *Session, c *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != c {
		return
	}
	s.conn = nil
	s.lastSeen = m.now()
	log.Printf("会话 %s 连接断开，保留 %s", s.ID, m.ttl)
}

// Count 当前会话数量
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown 停止清理协程
func (m *SessionManager) Shutdown() {
	m.once.Do(func() { close(m.shutdown) })
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	log.Printf("关闭 %d 个会话", len(m.sessions))
	m.sessions = make(map[string]*Session)
}
