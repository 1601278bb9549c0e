package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"bomberai/internal/client"
	"bomberai/internal/config"
	"bomberai/pkg/core"
)

func main() {
	configPath := flag.String("config", "", "YAML 配置文件路径")
	seed := flag.Int64("seed", 0, "地图种子，0 表示随机")
	preset := flag.String("ai", "", "AI 预设: normal、cautious、careless")
	arrows := flag.Bool("arrows", false, "使用方向键+回车（默认 WASD+空格）")
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

	scheme := client.ControlWASD
	if *arrows {
		scheme = client.ControlArrow
	}

	viewer, err := client.NewViewer(cfg, scheme)
	if err != nil {
		log.Fatal(err)
	}

	// 设置窗口选项
	w, h := viewer.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Bomberman AI [" + scheme.String() + "]")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(core.FPS)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
