package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-assistant/internal/api/handlers"
	"recipe-assistant/internal/api/handlers/health"
	"recipe-assistant/internal/api/handlers/mealplan"
	recipeHandler "recipe-assistant/internal/api/handlers/recipe"
	"recipe-assistant/internal/api/middleware"
	"recipe-assistant/internal/core/grocery"
	recipeService "recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/infrastructure/storage"
	"recipe-assistant/internal/pkg/common"
)

// 生成食譜可能需要多次呼叫模型
const timeoutDuration = 120 * time.Second

// Services 路由需要的服務
type Services struct {
	Recipes *recipeService.Service
	Grocery *grocery.Service
	Store   storage.Store
	// AI 可為 nil，健康檢查便不顯示隊列狀態
	AI health.QueueReporter
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	if cfg.BodyLimit > 0 {
		router.Use(middleware.BodySizeLimit(cfg.BodyLimit))
	}
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, svc.Store, svc.AI)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) { handlers.RespondError(c, common.ErrNotFound) })
	router.NoMethod(func(c *gin.Context) { handlers.RespondError(c, common.ErrMethodNotAllowed) })

	api := router.Group("/api/v1")
	api.Use(middleware.Deduplication(cfg.DedupWindow))
	{
		recipes := recipeHandler.NewHandler(svc.Recipes)
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/parse", recipes.HandleParse)
			recipeGroup.POST("/generate", recipes.HandleGenerate)
			recipeGroup.POST("", recipes.HandleImport)
			recipeGroup.GET("/:id", recipes.HandleGet)
		}

		plans := mealplan.NewHandler(svc.Store, svc.Grocery)
		planGroup := api.Group("/meal-plans")
		{
			planGroup.POST("", plans.HandleCreate)
			planGroup.GET("/:id", plans.HandleGet)
			planGroup.POST("/:id/entries", plans.HandleAddEntry)
			planGroup.GET("/:id/grocery-list", plans.HandleGroceryList)
		}
	}

	common.LogInfo("Router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", cfg.BodyLimit),
	)

	return router
}
