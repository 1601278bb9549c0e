package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os/signal"
	"syscall"
	"time"

	"bomberai/internal/arena"
	"bomberai/internal/config"
	"bomberai/internal/tui"
	"bomberai/pkg/core"
)

func main() {
	configPath := flag.String("config", "", "YAML 配置文件路径")
	ticks := flag.Int("ticks", 60*core.FPS, "最多运行的帧数")
	seed := flag.Int64("seed", 0, "地图种子，0 表示随机")
	preset := flag.String("ai", "", "AI 预设: normal、cautious、careless")
	useTUI := flag.Bool("tui", false, "在终端中实时绘制")
	verbose := flag.Bool("v", false, "输出对局日志")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *seed != 0 {
		cfg.Arena.Seed = *seed
	}
	if *preset != "" {
		cfg.AI.Preset = *preset
	}
	if cfg.Arena.Seed == 0 {
		cfg.Arena.Seed = time.Now().UnixNano()
	}

	a, err := arena.Build(cfg, nil)
	if err != nil {
		log.Fatalf("创建对局失败: %v", err)
	}
	if !*verbose || *useTUI {
		a.SetLogger(log.New(io.Discard, "", 0))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats := map[core.EventKind]int{}
	count := func(events []core.Event) {
		for _, e := range events {
			stats[e.Kind]++
		}
	}

	if *useTUI {
		r, err := tui.New()
		if err != nil {
			log.Fatalf("打开终端失败: %v", err)
		}
		r.Listen()
		ctx, cancel := context.WithCancel(ctx)
		go func() {
			select {
			case <-r.Quit():
				cancel()
			case <-ctx.Done():
			}
		}()
		a.Run(ctx, time.Second/core.FPS, func(events []core.Event) bool {
			count(events)
			r.Draw(a)
			return int(a.Game.Frame) < *ticks
		})
		cancel()
		r.Close()
	} else {
		for int(a.Game.Frame) < *ticks && a.Phase == arena.PhaseRunning && ctx.Err() == nil {
			count(a.Tick())
		}
	}

	fmt.Printf("种子: %d  预设: %s\n", cfg.Arena.Seed, cfg.AI.Preset)
	fmt.Printf("帧数: %d (%.1f 秒)\n", a.Game.Frame, float64(a.Game.Frame)/core.FPS)
	fmt.Printf("炸弹: %d  爆炸: %d  砖块: %d  道具: %d/%d  死亡: %d\n",
		stats[core.EventBombPlaced], stats[core.EventBombDetonated], stats[core.EventBrickDestroyed],
		stats[core.EventPowerUpGathered], stats[core.EventPowerUpDropped], stats[core.EventUnitKilled])
	switch {
	case a.Phase == arena.PhaseRunning:
		fmt.Println("结果: 未分胜负")
	case a.Winner >= 0:
		fmt.Printf("结果: 单位 %d 获胜\n", a.Winner)
	default:
		fmt.Println("结果: 平局")
	}
	if *verbose {
		fmt.Print(a.FormatLog())
	}
}
