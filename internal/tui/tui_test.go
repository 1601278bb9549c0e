package tui

import (
	"io"
	"log"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"bomberai/internal/arena"
	"bomberai/pkg/ai"
	"bomberai/pkg/core"
)

func TestGlyph(t *testing.T) {
	g := core.NewGame(core.MustParseGameMap("..W", "B.."), core.DefaultRules(), 1)
	b := core.NewBomb(1, 0, core.Cell{X: 0, Y: 0}, 1, g.Rules)
	b.RefreshZones(g.Map)
	g.Bombs = append(g.Bombs, b)
	g.PowerUps[core.Cell{X: 2, Y: 1}] = core.PowerUpExtraBomb

	for _, tc := range []struct {
		cell core.Cell
		want rune
	}{
		{core.Cell{X: 0, Y: 0}, 'o'},
		{core.Cell{X: 1, Y: 0}, '.'},
		{core.Cell{X: 2, Y: 0}, '#'},
		{core.Cell{X: 0, Y: 1}, '%'},
		{core.Cell{X: 1, Y: 1}, ' '},
		{core.Cell{X: 2, Y: 1}, '+'},
	} {
		got, _ := Glyph(g, tc.cell)
		require.Equal(t, tc.want, got, "格子 %s", tc.cell)
	}

	b.Exploded = true
	got, _ := Glyph(g, core.Cell{X: 1, Y: 0})
	require.Equal(t, '*', got)
}

func TestDrawArena(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 12)

	g := core.NewGame(core.MustParseGameMap("...", ".W."), core.DefaultRules(), 1)
	a := arena.New(g)
	a.SetLogger(log.New(io.Discard, "", 0))
	a.AddUnit(core.NewUnit(1, core.UnitEnemy, core.Cell{X: 2, Y: 1}),
		ai.NewPlanner(1, ai.NewAIController(), nil, 1))

	r := NewWithScreen(screen)
	r.Draw(a)

	ch, _, _, _ := screen.GetContent(2, 1)
	require.Equal(t, '#', ch)
	ch, _, _, _ = screen.GetContent(4, 1)
	require.Equal(t, '1', ch)
	ch, _, _, _ = screen.GetContent(0, 3)
	require.Equal(t, 'f', ch)
}
