// File: cmd/storefront/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/auth"
	"bazaar-tui/internal/pkg/config"
	"bazaar-tui/internal/pkg/log"
	"bazaar-tui/internal/pkg/metrics"
	"bazaar-tui/internal/session"
	"bazaar-tui/internal/storage"
	"bazaar-tui/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 日志写 stderr，stdout 留给终端界面
	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}
	log.Init(level, cfg.Environment)
	log.Info("storefront starting", log.Any("config", cfg.SanitizeForLog()))

	sessions := session.NewManager(log.GetLogger())

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log.GetLogger()),
		api.WithMetrics(metrics.DefaultClientMetrics),
		// 所有响应都过会话观察者，401 统一降级
		api.WithResponseObserver(sessions.Observer()),
	)

	authService := auth.NewService(client, sessions, log.GetLogger())

	// 存储没配就禁用上传，其余功能不受影响
	var uploader storage.Uploader
	if bucketUploader, err := storage.NewBucketUploader(&cfg); err == nil {
		uploader = bucketUploader
	} else {
		log.Info("对象存储未配置,图片上传不可用")
	}

	app := tui.NewApp(tui.Deps{
		Client:   client,
		Sessions: sessions,
		Auth:     authService,
		Config:   &cfg,
		Uploader: uploader,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error("界面退出异常", err)
		os.Exit(1)
	}
}
