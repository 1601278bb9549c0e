// Package config 读取 YAML 配置文件，未出现的字段保留默认值
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"bomberai/pkg/ai"
	"bomberai/pkg/core"
)

// Config 所有程序共用的配置
type Config struct {
	Arena  ArenaConfig  `yaml:"arena"`
	AI     AIConfig     `yaml:"ai"`
	Server ServerConfig `yaml:"server"`
}

// ArenaConfig 地图和规则
type ArenaConfig struct {
	Width                 int     `yaml:"width"`
	Height                int     `yaml:"height"`
	Units                 int     `yaml:"units"` // 单位数量，依次放在四个角
	SafeRange             float64 `yaml:"safe_range"`
	DestructibleThreshold int     `yaml:"destructible_threshold"`
	PowerUpThreshold      int     `yaml:"powerup_threshold"`
	FuseFrames            int     `yaml:"fuse_frames"`
	DamageFrames          int     `yaml:"damage_frames"`
	StepFrames            int     `yaml:"step_frames"`
	Seed                  int64   `yaml:"seed"`
}

// AIConfig 在预设基础上覆盖个别参数
type AIConfig struct {
	Preset         string   `yaml:"preset"`
	MaxSearchCost  int      `yaml:"max_search_cost"`
	MistakeRate    *float64 `yaml:"mistake_rate"`
	StrictEscape   *bool    `yaml:"strict_escape"`
	RandomizeRoads *bool    `yaml:"randomize_roads"`
}

// ServerConfig 规划服务
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	Proto             string        `yaml:"proto"` // tcp 或 kcp
	MaxSessions       int           `yaml:"max_sessions"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

// Default 返回默认配置
func Default() Config {
	return Config{
		Arena: ArenaConfig{
			Width:                 core.DefaultMapWidth,
			Height:                core.DefaultMapHeight,
			Units:                 4,
			SafeRange:             core.DefaultSafeRange,
			DestructibleThreshold: core.DestructibleThreshold,
			PowerUpThreshold:      core.PowerUpThreshold,
			FuseFrames:            core.BombFuseFrames,
			DamageFrames:          core.BombDamageFrames,
			StepFrames:            core.UnitStepFrames,
		},
		AI: AIConfig{
			Preset: "normal",
		},
		Server: ServerConfig{
			Addr:              ":8080",
			Proto:             "tcp",
			MaxSessions:       64,
			SessionTTL:        30 * time.Second,
			RequestsPerSecond: 120,
			Burst:             30,
		},
	}
}

// Load 读取配置文件并覆盖默认值，path 为空时返回默认配置
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("配置文件 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	var errs []error

	a := c.Arena
	if a.Width < 3 || a.Height < 3 {
		errs = append(errs, fmt.Errorf("arena: 地图尺寸 %dx%d 过小", a.Width, a.Height))
	}
	if a.Units < 1 || a.Units > 4 {
		errs = append(errs, fmt.Errorf("arena: 单位数量 %d 不在 1-4 之间", a.Units))
	}
	if a.FuseFrames <= 0 || a.DamageFrames <= 0 || a.StepFrames <= 0 {
		errs = append(errs, errors.New("arena: 帧数必须为正"))
	}
	if a.DestructibleThreshold < 0 || a.DestructibleThreshold > 100 {
		errs = append(errs, fmt.Errorf("arena: destructible_threshold %d 不在 0-100 之间", a.DestructibleThreshold))
	}
	if a.PowerUpThreshold < 0 || a.PowerUpThreshold > 100 {
		errs = append(errs, fmt.Errorf("arena: powerup_threshold %d 不在 0-100 之间", a.PowerUpThreshold))
	}

	if _, ok := ai.PresetByName(c.AI.Preset); !ok {
		errs = append(errs, fmt.Errorf("ai: 未知预设 %q", c.AI.Preset))
	}
	if c.AI.MaxSearchCost < 0 || c.AI.MaxSearchCost > ai.DefaultMaxSearchCost {
		errs = append(errs, fmt.Errorf("ai: max_search_cost %d 不在 0-%d 之间", c.AI.MaxSearchCost, ai.DefaultMaxSearchCost))
	}
	if r := c.AI.MistakeRate; r != nil && (*r < 0 || *r > 1) {
		errs = append(errs, fmt.Errorf("ai: mistake_rate %.2f 不在 0-1 之间", *r))
	}

	s := c.Server
	if s.Proto != "tcp" && s.Proto != "kcp" {
		errs = append(errs, fmt.Errorf("server: 不支持的协议 %q", s.Proto))
	}
	if s.MaxSessions <= 0 {
		errs = append(errs, errors.New("server: max_sessions 必须为正"))
	}
	if s.SessionTTL <= 0 {
		errs = append(errs, errors.New("server: session_ttl 必须为正"))
	}
	if s.RequestsPerSecond <= 0 || s.Burst <= 0 {
		errs = append(errs, errors.New("server: 限流参数必须为正"))
	}

	return errors.Join(errs...)
}

// MapConfig 转换为地图生成参数
func (a ArenaConfig) MapConfig() core.MapConfig {
	return core.MapConfig{
		Width:                 a.Width,
		Height:                a.Height,
		Spawns:                a.Spawns(),
		SafeRange:             a.SafeRange,
		DestructibleThreshold: a.DestructibleThreshold,
	}
}

// Spawns 前 Units 个角落
func (a ArenaConfig) Spawns() []core.Cell {
	corners := core.CornerSpawns(a.Width, a.Height)
	if a.Units < len(corners) {
		corners = corners[:a.Units]
	}
	return corners
}

// Rules 转换为计时参数
func (a ArenaConfig) Rules() core.Rules {
	return core.Rules{
		FuseFrames:    a.FuseFrames,
		DamageFrames:  a.DamageFrames,
		StepFrames:    a.StepFrames,
		PowerUpChance: a.PowerUpThreshold,
	}
}

// Build 预设加上覆盖项
func (c AIConfig) Build() (*ai.AIConfig, error) {
	preset, ok := ai.PresetByName(c.Preset)
	if !ok {
		return nil, fmt.Errorf("未知 AI 预设 %q", c.Preset)
	}
	if c.MaxSearchCost > 0 {
		preset.MaxSearchCost = c.MaxSearchCost
	}
	if c.MistakeRate != nil {
		preset.MistakeRate = *c.MistakeRate
	}
	if c.StrictEscape != nil {
		preset.StrictEscape = *c.StrictEscape
	}
	if c.RandomizeRoads != nil {
		preset.RandomizeRoads = *c.RandomizeRoads
	}
	return &preset, nil
}
