package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pantry-planner/internal/api/handlers/health"
	"pantry-planner/internal/api/handlers/pantry"
	recipeHandler "pantry-planner/internal/api/handlers/recipe"
	"pantry-planner/internal/api/middleware"
	"pantry-planner/internal/core/cache"
	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/core/meal"
	"pantry-planner/internal/core/queue"
	recipeService "pantry-planner/internal/core/recipe"
	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 單一請求的處理上限
const timeoutDuration = 30 * time.Second

// Services 路由依賴的服務
type Services struct {
	Classifier  *inventory.Classifier
	Meals       *meal.Engine
	Suggestions *recipeService.SuggestionService
	Pool        *queue.Pool
	Cache       cache.Store
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) (*gin.Engine, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if svc.Suggestions == nil {
		return nil, errors.New("suggestion service is required")
	}
	if svc.Classifier == nil {
		svc.Classifier = inventory.Default()
	}
	if svc.Meals == nil {
		svc.Meals = meal.NewEngine(meal.WithCategorizer(svc.Classifier))
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(requestid.New())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(requestTimeout(timeoutDuration))

	healthHandler := health.NewHandler(cfg, svc.Pool, svc.Cache)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		pantryHandler := pantry.NewHandler(svc.Classifier, svc.Meals)
		api.POST("/inventory/categorize", pantryHandler.HandleCategorize)
		api.POST("/meals/suggest", pantryHandler.HandleMealSuggestions)

		recipes := recipeHandler.NewHandler(svc.Suggestions, cfg.Matcher.DefaultThreshold)
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/analyze", recipes.HandleAnalyze)
			recipeGroup.POST("/rank", recipes.HandleRank)
			recipeGroup.GET("/suggestions", recipes.HandleSuggestions)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", svc.Cache != nil),
		zap.Bool("worker_pool", svc.Pool != nil),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

// requestTimeout 設置請求超時，超時後回傳 504
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			common.WriteError(c, common.ErrGatewayTimeout)
		}
	}
}

// NewServer 依設定建立 HTTP 伺服器
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
