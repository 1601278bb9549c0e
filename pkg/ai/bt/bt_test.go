package bt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type trace struct {
	calls []string
}

func record(name string, status Status) ActionFunc {
	return func(bb Blackboard) Status {
		t := bb.(*trace)
		t.calls = append(t.calls, name)
		return status
	}
}

func TestSelectorStopsAtFirstNonFailure(t *testing.T) {
	tr := &trace{}
	tree := Select(
		Do(record("a", StatusFailure)),
		Do(record("b", StatusSuccess)),
		Do(record("c", StatusSuccess)),
	)

	require.Equal(t, StatusSuccess, tree.Tick(tr))
	require.Equal(t, []string{"a", "b"}, tr.calls)
}

func TestSequenceStopsAtFirstNonSuccess(t *testing.T) {
	tr := &trace{}
	tree := Seq(
		Do(record("a", StatusSuccess)),
		Do(record("b", StatusRunning)),
		Do(record("c", StatusSuccess)),
	)

	require.Equal(t, StatusRunning, tree.Tick(tr))
	require.Equal(t, []string{"a", "b"}, tr.calls)
}

func TestDecorators(t *testing.T) {
	tr := &trace{}

	require.Equal(t, StatusFailure, Not(func(Blackboard) bool { return true }).Tick(tr))
	require.Equal(t, StatusSuccess, Not(func(Blackboard) bool { return false }).Tick(tr))
	require.Equal(t, StatusRunning, (&Inverter{Child: Do(record("r", StatusRunning))}).Tick(tr))
	require.Equal(t, StatusSuccess, (&Succeeder{Child: Do(record("f", StatusFailure))}).Tick(tr))
}

func TestNilFuncsFail(t *testing.T) {
	require.Equal(t, StatusFailure, (&Condition{}).Tick(nil))
	require.Equal(t, StatusFailure, (&Action{}).Tick(nil))
	require.Equal(t, "Running", StatusRunning.String())
}
