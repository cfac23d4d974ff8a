// HuPai 护理排班引擎服务
// 主程序入口

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hupai/hupai/internal/config"
	"github.com/hupai/hupai/internal/database"
	"github.com/hupai/hupai/internal/handler"
	"github.com/hupai/hupai/internal/metrics"
	"github.com/hupai/hupai/internal/middleware"
	"github.com/hupai/hupai/internal/repository"
	"github.com/hupai/hupai/pkg/logger"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	fmt.Printf("HuPai 护理排班引擎 v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("数据库初始化失败")
	}
	defer db.Close()

	repo := repository.NewSnapshotRepository(db)
	engineHandler := handler.NewEngineHandler(repo)

	mux := http.NewServeMux()

	// 系统端点
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded","database":"down"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"hupai"}`))
	})

	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, metrics.Handler())
	}

	// API v1 端点
	mux.HandleFunc("GET /api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "HuPai 护理排班引擎 API v1",
			"endpoints": {
				"schedules": {
					"evaluate": "POST /api/v1/schedules/{id}/evaluate",
					"score": "POST /api/v1/schedules/{id}/score"
				},
				"shifts": {
					"eligible_staff": "GET /api/v1/shifts/{id}/eligible-staff",
					"escalation_options": "GET /api/v1/shifts/{id}/escalation-options"
				},
				"rules": {
					"library": "GET /api/v1/rules/library"
				}
			}
		}`))
	})

	mux.HandleFunc("POST /api/v1/schedules/{id}/evaluate", engineHandler.Evaluate)
	mux.HandleFunc("POST /api/v1/schedules/{id}/score", engineHandler.Score)
	mux.HandleFunc("GET /api/v1/shifts/{id}/eligible-staff", engineHandler.EligibleStaff)
	mux.HandleFunc("GET /api/v1/shifts/{id}/escalation-options", engineHandler.EscalationOptions)
	mux.HandleFunc("GET /api/v1/rules/library", handler.RuleLibrary)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.App.Port),
		Handler: middleware.Chain(mux,
			middleware.Recovery,
			middleware.RequestID,
			middleware.Logging,
			middleware.CORS(cfg.API.CORS),
		),
		ReadTimeout:  cfg.API.Timeout,
		WriteTimeout: cfg.API.Timeout,
	}

	go func() {
		logger.Info().Int("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("服务启动失败")
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("收到退出信号，开始优雅关闭")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("优雅关闭失败")
	}
	logger.Info().Msg("服务已退出")
}
