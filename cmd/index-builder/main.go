// Package main 向量索引离线构建工具
package main

import (
	"context"
	"fmt"
	"os"

	"reel-script-api/internal/config"
	"reel-script-api/internal/infrastructure/embedding"
	"reel-script-api/internal/infrastructure/vectorindex"
	"reel-script-api/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	logger.Info(ctx, "building vector index",
		"path", cfg.Index.Path,
		"model", cfg.Embedding.Model,
	)

	embedder, err := embedding.NewEinoEmbedder(ctx, &cfg.Embedding)
	if err != nil {
		logger.Fatal(ctx, "failed to init embedder", err)
	}

	index, err := vectorindex.Build(ctx, embedder, cfg.Embedding.Model, vectorindex.SeedDocuments())
	if err != nil {
		logger.Fatal(ctx, "failed to build index", err)
	}

	if err := vectorindex.Save(index, cfg.Index.Path); err != nil {
		logger.Fatal(ctx, "failed to save index", err)
	}

	logger.Info(ctx, "vector index written",
		"path", cfg.Index.Path,
		"documents", index.Len(),
		"dimension", index.Dimension,
	)
}
