package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bomberai/pkg/ai"
	"bomberai/pkg/core"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bomberai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, core.DefaultRules(), cfg.Arena.Rules())

	aiCfg, err := cfg.AI.Build()
	require.NoError(t, err)
	require.Equal(t, ai.AIConfigNormal, *aiCfg)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeFile(t, `
arena:
  width: 11
  height: 9
  units: 2
ai:
  preset: cautious
  max_search_cost: 6
  mistake_rate: 0.25
  randomize_roads: false
server:
  proto: kcp
  session_ttl: 90s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 11, cfg.Arena.Width)
	require.Equal(t, 9, cfg.Arena.Height)
	require.Equal(t, core.BombFuseFrames, cfg.Arena.FuseFrames)
	require.Equal(t, []core.Cell{{X: 0, Y: 0}, {X: 10, Y: 0}}, cfg.Arena.Spawns())
	require.Equal(t, "kcp", cfg.Server.Proto)
	require.Equal(t, 90*time.Second, cfg.Server.SessionTTL)
	require.Equal(t, ":8080", cfg.Server.Addr)

	aiCfg, err := cfg.AI.Build()
	require.NoError(t, err)
	require.Equal(t, ai.AIConfig{
		MaxSearchCost:  6,
		StrictEscape:   true,
		RandomizeRoads: false,
		MistakeRate:    0.25,
	}, *aiCfg)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"地图过小", "arena:\n  width: 2\n"},
		{"未知预设", "ai:\n  preset: reckless\n"},
		{"失误率越界", "ai:\n  mistake_rate: 1.5\n"},
		{"搜索上限过大", "ai:\n  max_search_cost: 40\n"},
		{"搜索上限为负", "ai:\n  max_search_cost: -1\n"},
		{"未知协议", "server:\n  proto: udp\n"},
		{"语法错误", "arena: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
