package ai

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"bomberai/pkg/core"
)

func TestFindNodeOpenCell(t *testing.T) {
	g := newWorld(
		"...",
		"...",
		"...",
	)
	n := NewPathNode(cell(1, 1))
	n.FindNode(g)

	require.Equal(t, []core.Cell{cell(1, 0), cell(2, 1), cell(1, 2), cell(0, 1)}, n.OpenRoads())
}

func TestFindNodeSkipsBombsAndWalls(t *testing.T) {
	g := newWorld(
		".W.",
		"...",
		".B.",
	)
	addBomb(g, cell(2, 1), 1, false)
	n := NewPathNode(cell(1, 1))
	n.FindNode(g)

	require.Equal(t, []core.Cell{cell(0, 1)}, n.OpenRoads())
}

func TestWalledInUnitHasNoRoad(t *testing.T) {
	g := newWorld(
		"WWW",
		"W.W",
		"WWW",
	)
	n := NewPathNode(cell(1, 1))
	n.FindNode(g)
	require.Empty(t, n.OpenRoads())

	n.PrepareRoads()
	_, ok := n.NextRoad()
	require.False(t, ok)
	require.True(t, n.IsPathEnded(g))
}

func TestRoadsDrainOnce(t *testing.T) {
	g := newWorld(
		"...",
		"...",
		"...",
	)
	n := NewPathNode(cell(1, 1))
	n.FindNode(g)

	n.PrepareRoads()
	require.Equal(t, 4, n.PendingRoads())

	var got []core.Cell
	for {
		c, ok := n.NextRoad()
		if !ok {
			break
		}
		got = append(got, c)
	}
	require.Equal(t, n.OpenRoads(), got)

	// 缓存仍在，但不会再次进入队列
	n.PrepareRoads()
	require.Zero(t, n.PendingRoads())
	require.Len(t, n.OpenRoads(), 4)

	// 重新计算后才会提供新的移动
	n.FindNode(g)
	n.PrepareRoads()
	require.Equal(t, 4, n.PendingRoads())
}

func TestLimitMoveDirections(t *testing.T) {
	g := newWorld(
		"...",
		"...",
		"...",
	)
	n := NewPathNode(cell(1, 1))
	n.LimitMoveDirections([]core.Cell{core.DirLeft})
	n.FindNode(g)

	require.Equal(t, []core.Cell{cell(0, 1)}, n.OpenRoads())
	require.Equal(t, []core.Cell{core.DirLeft}, n.MoveDirections())
}

func TestChildAndDeadEnd(t *testing.T) {
	g := newWorld(
		"W.W",
		"...",
	)
	root := NewPathNode(cell(1, 1))
	require.Nil(t, root.Prev)
	require.False(t, root.IsPathEnded(g))

	child := root.Child(cell(1, 0))
	require.Equal(t, 1, child.Cost)
	require.Equal(t, core.DirUp, child.Direction)
	require.Equal(t, cell(1, 1), *child.Prev)
	// 除去来时的方向后无路可走
	require.True(t, child.IsPathEnded(g))
}

func TestRemoveAndRandomizeRoads(t *testing.T) {
	g := newWorld(
		"...",
		"...",
		"...",
	)
	n := NewPathNode(cell(1, 1))
	n.FindNode(g)
	n.RemoveRoad(cell(1, 0))
	n.RemoveRoad(cell(9, 9))
	require.Len(t, n.OpenRoads(), 3)

	n.RandomizeRoads(rand.New(rand.NewSource(3)))
	require.ElementsMatch(t, []core.Cell{cell(2, 1), cell(1, 2), cell(0, 1)}, n.OpenRoads())
}
