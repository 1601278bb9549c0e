package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"bomberai/pkg/ai"
	"bomberai/pkg/core"
)

func sampleSnapshot() core.Snapshot {
	g := core.NewGame(core.MustParseGameMap(
		".....",
		".W.B.",
		".....",
	), core.DefaultRules(), 1)
	u := core.NewUnit(0, core.UnitPlayer, core.Cell{X: 0, Y: 0})
	e := core.NewUnit(7, core.UnitEnemy, core.Cell{X: 4, Y: 2})
	g.AddUnit(u)
	g.AddUnit(e)
	g.UseBomb(u)
	g.MoveUnit(e, core.Cell{X: 3, Y: 2})
	g.PowerUps[core.Cell{X: 2, Y: 2}] = core.PowerUpExtraRange
	return g.Snapshot()
}

func TestPlanRequestRoundTrip(t *testing.T) {
	req := &PlanRequest{Seq: 42, Snapshot: sampleSnapshot(), UnitIDs: []int{0, 7}}

	msg, err := Unmarshal(Marshal(req))
	require.NoError(t, err)
	got, ok := msg.(*PlanRequest)
	require.True(t, ok)
	require.Equal(t, req, got)

	// 解码后的快照可以恢复世界
	g, err := core.NewGameFromSnapshot(got.Snapshot, core.DefaultRules())
	require.NoError(t, err)
	require.Len(t, g.Bombs, 1)
	require.True(t, g.Unit(7).HasPath())
}

func TestPlanResponseKeepsNegativeDirections(t *testing.T) {
	resp := &PlanResponse{
		Seq:   3,
		Frame: 120,
		Decisions: []UnitDecision{
			{UnitID: 1, Decision: ai.Decision{Kind: ai.NextMove, Direction: core.DirLeft, Target: core.Cell{X: 0, Y: 3}}, State: ai.StateEscaping},
			{UnitID: 2, Decision: ai.Decision{Kind: ai.Stationary}, State: ai.StateStationary},
		},
	}

	msg, err := Unmarshal(Marshal(resp))
	require.NoError(t, err)
	require.Equal(t, resp, msg)
}

func TestSessionMessages(t *testing.T) {
	for _, m := range []Message{
		&Hello{ClientName: "unity", Preset: "cautious"},
		&Welcome{SessionID: "abc", Token: "t", Resumed: true},
		&Reconnect{Token: "t"},
		&Ping{ClientTime: 99},
		&Pong{ClientTime: 99, ServerTime: 100},
		&Error{Code: ErrorRateLimited, Message: "慢一点", Seq: 5},
	} {
		t.Run(m.Type().String(), func(t *testing.T) {
			got, err := Unmarshal(Marshal(m))
			require.NoError(t, err)
			require.Equal(t, m, got)
		})
	}
}

func TestUnknownMessageType(t *testing.T) {
	data := MarshalPacket(&Packet{Type: MessageType(99)})
	_, err := Unmarshal(data)
	require.ErrorIs(t, err, ErrUnknownMessage)
}

func TestTruncatedPayload(t *testing.T) {
	data := Marshal(&Hello{ClientName: "unity"})
	_, err := Unmarshal(data[:len(data)-2])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	var e encoder
	e.string(1, "unity")
	e.buf = protowire.AppendTag(e.buf, 15, protowire.Fixed32Type)
	e.buf = protowire.AppendFixed32(e.buf, 7)
	e.string(2, "careless")

	pkt := &Packet{Type: MessageHello, Payload: e.buf}
	msg, err := pkt.Decode()
	require.NoError(t, err)
	require.Equal(t, &Hello{ClientName: "unity", Preset: "careless"}, msg)
}

func TestFrames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("abc")))
	require.NoError(t, WriteFrame(&buf, nil))

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)

	got, err = ReadFrame(&buf)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = ReadFrame(&buf)
	require.True(t, errors.Is(err, io.EOF))

	require.Error(t, WriteFrame(&buf, make([]byte, MaxPacketSize+1)))
}
