package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bomberai/internal/config"
	"bomberai/internal/server"
)

func main() {
	// 命令行参数
	configPath := flag.String("config", "", "YAML 配置文件路径")
	address := flag.String("addr", "", "服务器监听地址（覆盖配置文件）")
	proto := flag.String("proto", "", "传输协议 tcp 或 kcp（覆盖配置文件）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *address != "" {
		cfg.Server.Addr = *address
	}
	if *proto != "" {
		cfg.Server.Proto = *proto
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	plannerServer := server.NewPlannerServer(cfg)

	// 启动服务器（在新的 goroutine 中）
	go func() {
		if err := plannerServer.Start(); err != nil {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	log.Println("========================================")
	log.Println("  Bomberman AI 规划服务")
	log.Println("========================================")
	log.Printf("监听地址: %s (%s)", cfg.Server.Addr, cfg.Server.Proto)
	log.Printf("AI 预设: %s", cfg.AI.Preset)
	log.Printf("最大会话数: %d", cfg.Server.MaxSessions)
	log.Printf("会话保留: %s", cfg.Server.SessionTTL)
	log.Printf("限流: %.0f 次/秒，突发 %d", cfg.Server.RequestsPerSecond, cfg.Server.Burst)
	log.Println("========================================")
	log.Println("按 Ctrl+C 停止服务器")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	plannerServer.Shutdown()
	log.Println("服务器已关闭，再见！")
}
