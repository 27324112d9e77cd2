package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-planner/internal/api"
	"pantry-planner/internal/core/cache"
	"pantry-planner/internal/core/catalog"
	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/core/meal"
	"pantry-planner/internal/core/queue"
	"pantry-planner/internal/core/recipe"
	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("catalog_base_url", cfg.Catalog.BaseURL),
		zap.String("catalog_api_key", config.MaskAPIKey(cfg.Catalog.APIKey)),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Int("queue_workers", cfg.Queue.Workers),
	)

	ctx := context.Background()

	// 初始化快取
	store, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	defer store.Close()

	pool := queue.NewPool(cfg.Queue)
	defer pool.Close()

	classifier := inventory.Default()
	matcher := recipe.NewMatcher(recipe.Thresholds{
		PartialRatio:     cfg.Matcher.PartialRatio,
		KeywordRatio:     cfg.Matcher.KeywordRatio,
		KeywordMinTokens: cfg.Matcher.KeywordMinTokens,
	})

	router, err := api.SetupRouter(cfg, api.Services{
		Classifier:  classifier,
		Meals:       meal.NewEngine(meal.WithCategorizer(classifier)),
		Suggestions: recipe.NewSuggestionService(matcher, catalog.NewClient(cfg.Catalog), store, pool),
		Pool:        pool,
		Cache:       store,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := api.NewServer(cfg, router)

	go func() {
		common.LogInfo("啟動應用",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
