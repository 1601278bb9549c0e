package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bomberai/pkg/core"
)

func TestSimulateFootprintOpenWorld(t *testing.T) {
	footprint := SimulateFootprint(openOracle{}, cell(0, 0), 2)

	require.ElementsMatch(t, []core.Cell{
		cell(0, 0),
		cell(1, 0), cell(2, 0),
		cell(-1, 0), cell(-2, 0),
		cell(0, 1), cell(0, 2),
		cell(0, -1), cell(0, -2),
	}, FootprintCells(footprint))
}

func TestSimulateFootprintOcclusion(t *testing.T) {
	g := newWorld(
		".......",
		"...W...",
		".......",
		".B.....",
		".......",
		".......",
		".......",
	)
	center := cell(3, 3)
	footprint := SimulateFootprint(g, center, 3)

	require.True(t, footprint.Has(center))
	// 不可破坏物本身和其后的格子都不计入
	require.True(t, footprint.Has(cell(3, 2)))
	require.False(t, footprint.Has(cell(3, 1)))
	require.False(t, footprint.Has(cell(3, 0)))
	// 可破坏物计入并阻断
	require.True(t, footprint.Has(cell(2, 3)))
	require.True(t, footprint.Has(cell(1, 3)))
	require.False(t, footprint.Has(cell(0, 3)))
	require.Equal(t, 10, footprint.Size())
}

func TestSimulateFootprintMatchesLiveBomb(t *testing.T) {
	g := newWorld(
		".....",
		".W.B.",
		".B...",
		"..W..",
		".....",
	)
	center := cell(2, 2)
	footprint := SimulateFootprint(g, center, 2)

	b := core.NewBomb(1, 1, center, 2, g.Rules)
	b.RefreshZones(g.Map)
	require.ElementsMatch(t, b.ActiveCells(), FootprintCells(footprint))
}

func TestSimulateFootprintIsDeterministic(t *testing.T) {
	g := core.NewGame(core.GenerateGameMap(core.DefaultMapConfig(), 7), core.DefaultRules(), 7)
	center := cell(0, 0)

	first := SimulateFootprint(g, center, 4)
	second := SimulateFootprint(g, center, 4)
	require.Equal(t, sortedCells(first), sortedCells(second))
}

func TestSimulateFootprintDoesNotTouchWorld(t *testing.T) {
	g := newWorld(
		"...",
		"...",
		"...",
	)
	SimulateFootprint(g, cell(1, 1), 1)

	require.Empty(t, g.Bombs)
	require.False(t, IsHazard(g, cell(1, 1)))
}
