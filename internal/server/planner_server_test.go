package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bomberai/internal/config"
	"bomberai/pkg/ai"
	"bomberai/pkg/core"
	"bomberai/pkg/protocol"
)

func startServer(t *testing.T, mutate func(*config.Config)) *PlannerServer {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	if mutate != nil {
		mutate(&cfg)
	}
	s := NewPlannerServer(cfg)
	require.NoError(t, s.Listen())
	t.Cleanup(s.Shutdown)
	return s
}

func dialServer(t *testing.T, s *PlannerServer) *Client {
	t.Helper()
	c, err := Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPlanOverTCP(t *testing.T) {
	s := startServer(t, nil)
	c := dialServer(t, s)

	w, err := c.Hello("engine", "")
	require.NoError(t, err)
	require.NotEmpty(t, w.SessionID)
	require.NotEmpty(t, w.Token)
	require.False(t, w.Resumed)

	g := core.NewGame(core.MustParseGameMap("....."), core.DefaultRules(), 1)
	g.AddUnit(core.NewUnit(0, core.UnitEnemy, core.Cell{X: 0, Y: 0}))
	g.AddUnit(core.NewUnit(1, core.UnitEnemy, core.Cell{X: 4, Y: 0}))

	resp, err := c.Plan(g.Snapshot(), 0, 1)
	require.NoError(t, err)
	require.Equal(t, uint32(1), resp.Seq)
	require.Len(t, resp.Decisions, 2)
	require.Equal(t, ai.NextMove, resp.Decisions[0].Decision.Kind)
	require.Equal(t, core.Cell{X: 1, Y: 0}, resp.Decisions[0].Decision.Target)
	require.Equal(t, 1, resp.Decisions[1].UnitID)
	require.Equal(t, core.Cell{X: 3, Y: 0}, resp.Decisions[1].Decision.Target)

	rtt, err := c.Ping()
	require.NoError(t, err)
	require.Greater(t, rtt, time.Duration(0))
}

func TestPlanWithoutSession(t *testing.T) {
	s := startServer(t, nil)
	c := dialServer(t, s)

	g := core.NewGame(core.MustParseGameMap("..."), core.DefaultRules(), 1)
	g.AddUnit(core.NewUnit(0, core.UnitEnemy, core.Cell{}))

	_, err := c.Plan(g.Snapshot(), 0)
	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, protocol.ErrorNoSession, perr.Code)
	require.Equal(t, uint32(1), perr.Seq)
}

func TestPlanWithOversizedSnapshot(t *testing.T) {
	s := startServer(t, nil)
	c := dialServer(t, s)
	_, err := c.Hello("engine", "")
	require.NoError(t, err)

	_, err = c.Plan(core.Snapshot{Width: 1 << 62, Height: 4}, 0)
	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, protocol.ErrorBadRequest, perr.Code)
	require.Equal(t, uint32(1), perr.Seq)

	// 同一连接和服务仍然可用
	g := core.NewGame(core.MustParseGameMap("....."), core.DefaultRules(), 1)
	g.AddUnit(core.NewUnit(0, core.UnitEnemy, core.Cell{}))
	resp, err := c.Plan(g.Snapshot(), 0)
	require.NoError(t, err)
	require.Equal(t, core.Cell{X: 1, Y: 0}, resp.Decisions[0].Decision.Target)

	other := dialServer(t, s)
	_, err = other.Hello("engine-2", "")
	require.NoError(t, err)
}

func TestHelloWithUnknownPreset(t *testing.T) {
	s := startServer(t, nil)
	c := dialServer(t, s)

	_, err := c.Hello("engine", "reckless")
	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, protocol.ErrorBadRequest, perr.Code)
}

func TestPlanRequestsAreRateLimited(t *testing.T) {
	s := startServer(t, func(cfg *config.Config) {
		cfg.Server.RequestsPerSecond = 0.001
		cfg.Server.Burst = 1
	})
	c := dialServer(t, s)
	_, err := c.Hello("engine", "")
	require.NoError(t, err)

	g := core.NewGame(core.MustParseGameMap("..."), core.DefaultRules(), 1)
	g.AddUnit(core.NewUnit(0, core.UnitEnemy, core.Cell{}))

	_, err = c.Plan(g.Snapshot(), 0)
	require.NoError(t, err)

	_, err = c.Plan(g.Snapshot(), 0)
	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, protocol.ErrorRateLimited, perr.Code)
	require.Equal(t, uint32(2), perr.Seq)
}

func TestReconnectResumesSession(t *testing.T) {
	s := startServer(t, nil)
	first := dialServer(t, s)
	w, err := first.Hello("engine", "")
	require.NoError(t, err)

	second := dialServer(t, s)
	resumed, err := second.Reconnect(w.Token)
	require.NoError(t, err)
	require.True(t, resumed.Resumed)
	require.Equal(t, w.SessionID, resumed.SessionID)
	require.Equal(t, 1, s.Sessions().Count())

	// 旧连接已被服务端关闭
	_, err = first.Ping()
	require.Error(t, err)

	third := dialServer(t, s)
	_, err = third.Reconnect("bogus")
	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, protocol.ErrorNoSession, perr.Code)
}

func TestReconnectAfterSessionReclaimed(t *testing.T) {
	s := startServer(t, nil)
	c := dialServer(t, s)

	token, err := GenerateSessionToken("gone", time.Minute)
	require.NoError(t, err)

	_, err = c.Reconnect(token)
	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, protocol.ErrorSessionExpired, perr.Code)
}
