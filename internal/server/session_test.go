package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bomberai/internal/config"
	"bomberai/pkg/ai"
	"bomberai/pkg/core"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	cfg := config.Default()
	cfg.Server.MaxSessions = 2
	cfg.Server.SessionTTL = time.Minute
	return NewSessionManager(context.Background(), cfg)
}

func corridorSnapshot(unitCell core.Cell) core.Snapshot {
	g := core.NewGame(core.MustParseGameMap("....."), core.DefaultRules(), 1)
	g.AddUnit(core.NewUnit(0, core.UnitEnemy, unitCell))
	return g.Snapshot()
}

func TestSessionManagerCreate(t *testing.T) {
	m := newTestManager(t)

	s, err := m.Create("a", "")
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	require.Equal(t, ai.AIConfigNormal, *s.config)

	s2, err := m.Create("b", "cautious")
	require.NoError(t, err)
	require.NotEqual(t, s.ID, s2.ID)
	require.True(t, s2.config.StrictEscape)

	_, err = m.Create("c", "")
	require.ErrorIs(t, err, ErrTooManySessions)
	require.Equal(t, 2, m.Count())
}

func TestSessionManagerRejectsUnknownPreset(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Create("a", "reckless")
	require.Error(t, err)
	require.Zero(t, m.Count())
}

func TestSessionExpiresOnlyWhenDetached(t *testing.T) {
	m := newTestManager(t)
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }

	s, err := m.Create("a", "")
	require.NoError(t, err)
	conn := &Connection{}
	require.Nil(t, m.Attach(s, conn))

	now = now.Add(time.Hour)
	require.Zero(t, m.expire())

	// 其他连接的断开不影响当前绑定
	m.Detach(s, &Connection{})
	require.Zero(t, m.expire())

	m.Detach(s, conn)
	now = now.Add(30 * time.Second)
	require.Zero(t, m.expire())

	resumed, err := m.Resume(s.ID)
	require.NoError(t, err)
	require.Same(t, s, resumed)

	now = now.Add(time.Minute)
	require.Equal(t, 1, m.expire())

	_, err = m.Resume(s.ID)
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestSessionPlan(t *testing.T) {
	m := newTestManager(t)
	s, err := m.Create("a", "")
	require.NoError(t, err)

	resp, err := s.Plan(&PlanEvent{Seq: 3, Snapshot: corridorSnapshot(core.Cell{X: 0, Y: 0}), UnitIDs: []int{0}})
	require.NoError(t, err)
	require.Equal(t, uint32(3), resp.Seq)
	require.Len(t, resp.Decisions, 1)
	d := resp.Decisions[0]
	require.Equal(t, 0, d.UnitID)
	require.Equal(t, ai.NextMove, d.Decision.Kind)
	require.Equal(t, core.Cell{X: 1, Y: 0}, d.Decision.Target)
	require.Equal(t, 1, s.Planners())

	// 单位到达后规划器沿用上一步的节点继续前进
	resp, err = s.Plan(&PlanEvent{Seq: 4, Snapshot: corridorSnapshot(core.Cell{X: 1, Y: 0}), UnitIDs: []int{0}})
	require.NoError(t, err)
	require.Equal(t, core.Cell{X: 2, Y: 0}, resp.Decisions[0].Decision.Target)
	require.Equal(t, 1, s.Planners())
}

func TestSessionPlanEdgeCases(t *testing.T) {
	m := newTestManager(t)
	s, err := m.Create("a", "")
	require.NoError(t, err)

	_, err = s.Plan(&PlanEvent{Snapshot: corridorSnapshot(core.Cell{}), UnitIDs: []int{9}})
	require.ErrorIs(t, err, ErrUnknownUnit)

	// 未知单位排在后面时，前面的单位也不做规划
	_, err = s.Plan(&PlanEvent{Snapshot: corridorSnapshot(core.Cell{}), UnitIDs: []int{0, 9}})
	require.ErrorIs(t, err, ErrUnknownUnit)
	require.Zero(t, s.Planners())

	_, err = s.Plan(&PlanEvent{Snapshot: core.Snapshot{}, UnitIDs: []int{0}})
	require.Error(t, err)

	snap := corridorSnapshot(core.Cell{})
	snap.Units[0].Moving = true
	snap.Units[0].Target = core.Cell{X: 1, Y: 0}
	resp, err := s.Plan(&PlanEvent{Snapshot: snap, UnitIDs: []int{0}})
	require.NoError(t, err)
	require.Equal(t, ai.Stationary, resp.Decisions[0].Decision.Kind)

	snap = corridorSnapshot(core.Cell{})
	snap.Units[0].Dead = true
	resp, err = s.Plan(&PlanEvent{Snapshot: snap, UnitIDs: []int{0}})
	require.NoError(t, err)
	require.Equal(t, ai.Stationary, resp.Decisions[0].Decision.Kind)
	require.Zero(t, s.Planners())
}
