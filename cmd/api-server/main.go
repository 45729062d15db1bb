// Package main Reel 脚本生成服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reel-script-api/internal/application/generation"
	"reel-script-api/internal/application/retrieval"
	"reel-script-api/internal/application/validation"
	"reel-script-api/internal/config"
	"reel-script-api/internal/infrastructure/embedding"
	"reel-script-api/internal/infrastructure/llm"
	redisinfra "reel-script-api/internal/infrastructure/persistence/redis"
	"reel-script-api/internal/infrastructure/vectorindex"
	"reel-script-api/internal/interfaces/http/handler"
	"reel-script-api/internal/interfaces/http/middleware"
	"reel-script-api/internal/interfaces/http/router"
	"reel-script-api/internal/workflow/chain"
	"reel-script-api/pkg/logger"
	"reel-script-api/pkg/tracer"

	"github.com/joho/godotenv"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting api-server",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 初始化追踪
	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 嵌入客户端与向量索引
	embedder, err := embedding.NewEinoEmbedder(ctx, &cfg.Embedding)
	if err != nil {
		logger.Fatal(ctx, "failed to init embedder", err)
	}

	holder := vectorindex.NewHolder(embedder, cfg.Embedding.Model, cfg.Index.Path, cfg.Index.RebuildOnMissing)
	if err := holder.Init(ctx); err != nil {
		logger.Fatal(ctx, "failed to init vector index", err)
	}

	// Redis（可选，仅用于限流）
	var redisClient *redisinfra.Client
	var limiter middleware.RateLimiter
	if cfg.Cache.Redis.Enabled {
		redisClient, err = redisinfra.NewClient(&cfg.Cache.Redis)
		if err != nil {
			logger.Fatal(ctx, "failed to init redis", err)
		}
		defer redisClient.Close()
		limiter = redisinfra.NewRateLimiter(redisClient)
	}

	// 应用服务装配
	factory := llm.NewEinoFactory(cfg)
	scriptChain := chain.NewReelScriptChain(factory)
	engine := retrieval.NewEngine(embedder, holder, cfg.Retrieval.TopK)
	validator := validation.NewValidator(cfg.Validation)
	generator := generation.NewGenerator(scriptChain, engine, validator, cfg)

	// 路由装配
	r := router.New(cfg, router.Handlers{
		Health:    handler.NewHealthHandler(holder, redisClient),
		Generate:  handler.NewGenerateHandler(generator),
		Catalog:   handler.NewCatalogHandler(),
		Retrieval: handler.NewRetrievalHandler(engine),
		Index:     handler.NewIndexHandler(holder),
	}, limiter)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	// 启动服务器
	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
