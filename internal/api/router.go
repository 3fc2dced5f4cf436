package api

import (
	"fmt"
	"sort"
	"time"

	aiHandler "gofoody-ai/internal/api/handlers/ai"
	"gofoody-ai/internal/api/handlers/health"
	"gofoody-ai/internal/api/middleware"
	"gofoody-ai/internal/core/assistant"
	"gofoody-ai/internal/core/cache"
	"gofoody-ai/internal/core/meal"
	"gofoody-ai/internal/infrastructure/config"
	"gofoody-ai/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由所需的服務
type Dependencies struct {
	Engine      *meal.Engine
	UserRecipes health.UserStore
	Lookups     *cache.CacheManager
	Coach       *assistant.Coach
	Suggester   *assistant.Suggester
	Chat        *assistant.Chat
	Picker      assistant.Picker
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Engine == nil || deps.Coach == nil || deps.Suggester == nil || deps.Chat == nil || deps.Picker == nil {
		return nil, fmt.Errorf("router dependencies are incomplete")
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
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, deps.Engine.Catalog(), deps.UserRecipes, deps.Lookups)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	h := aiHandler.NewHandler(deps.Engine, deps.Coach, deps.Suggester, deps.Chat, deps.Picker)

	ai := router.Group("/ai")
	{
		// 聊天不需驗證
		ai.POST("/chat", h.HandleChat)

		secured := ai.Group("")
		secured.Use(middleware.APIKeyAuth(cfg.Auth.APIKey))
		{
			secured.POST("/meal", h.HandleMeal)
			secured.POST("/nutrizione", h.HandleNutrition)
			secured.POST("/dispensa", h.HandlePantry)
			secured.POST("/coach", h.HandleCoach)
			secured.POST("/procedimento", h.HandleProcedure)
			secured.POST("/ricetta", h.HandleSuggest)
		}
	}

	routes := make([]string, 0, len(router.Routes()))
	for _, r := range router.Routes() {
		routes = append(routes, r.Method+" "+r.Path)
	}
	sort.Strings(routes)
	healthHandler.SetRoutes(routes)

	common.LogInfo("Router setup completed successfully",
		zap.Int("routes", len(routes)),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
