package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bomberai/pkg/core"
	"bomberai/pkg/protocol"
)

func TestDecodePacket(t *testing.T) {
	ev, err := DecodePacket(protocol.Marshal(&protocol.Hello{ClientName: "engine", Preset: "cautious"}))
	require.NoError(t, err)
	require.Equal(t, EventHello, ev.Kind)
	require.Equal(t, &HelloEvent{ClientName: "engine", Preset: "cautious"}, ev.Hello)

	g := core.NewGame(core.MustParseGameMap("..."), core.DefaultRules(), 1)
	g.AddUnit(core.NewUnit(0, core.UnitEnemy, core.Cell{X: 0, Y: 0}))
	ev, err = DecodePacket(protocol.Marshal(&protocol.PlanRequest{Seq: 7, Snapshot: g.Snapshot(), UnitIDs: []int{0}}))
	require.NoError(t, err)
	require.Equal(t, EventPlan, ev.Kind)
	require.Equal(t, uint32(7), ev.Plan.Seq)
	require.Equal(t, []int{0}, ev.Plan.UnitIDs)
	require.Equal(t, 3, ev.Plan.Snapshot.Width)

	ev, err = DecodePacket(protocol.Marshal(&protocol.Ping{ClientTime: 42}))
	require.NoError(t, err)
	require.Equal(t, EventPing, ev.Kind)
	require.Equal(t, int64(42), ev.Ping.ClientTime)
}

func TestDecodePacketRejectsServerMessages(t *testing.T) {
	_, err := DecodePacket(protocol.Marshal(&protocol.Welcome{SessionID: "x"}))
	require.ErrorIs(t, err, protocol.ErrUnknownMessage)

	_, err = DecodePacket([]byte{0xff})
	require.Error(t, err)
}
