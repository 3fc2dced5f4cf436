package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gofoody-ai/internal/api"
	"gofoody-ai/internal/core/assistant"
	"gofoody-ai/internal/core/cache"
	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/core/meal"
	"gofoody-ai/internal/core/service"
	"gofoody-ai/internal/core/store"
	"gofoody-ai/internal/infrastructure/config"
	"gofoody-ai/internal/pkg/common"

	"github.com/go-redis/redis/v8"
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
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("api_key", common.MaskSecret(cfg.Auth.APIKey)),
		zap.String("store_backend", cfg.Store.Backend),
		zap.Bool("fallback_enabled", cfg.Fallback.Enabled),
	)

	// 參考資料：營養資料庫缺失時無法啟動
	cat, err := catalog.Load(cfg.Data)
	if err != nil {
		common.LogFatal("Failed to load catalog", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout+5*time.Second)
	var redisClient *redis.Client
	if cfg.Store.Backend == "redis" {
		redisClient, err = store.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			cancel()
			common.LogFatal("Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		defer redisClient.Close()
	}

	backend, err := store.NewBackend(cfg, redisClient)
	if err != nil {
		cancel()
		common.LogFatal("Failed to create user recipe backend", zap.Error(err))
	}
	users := store.NewUserRecipes(ctx, backend, cat.Aliases)
	cancel()

	// 初始化快取
	lookups := cache.NewManager(cfg.Cache)
	defer lookups.Close()

	engine := meal.NewEngine(cat, users, lookups, meal.Options{
		FuzzyThreshold: cfg.Matching.FuzzyThreshold,
		PieceThreshold: cfg.Matching.PieceThreshold,
	})
	if cfg.Fallback.Enabled {
		engine.WithRemote(service.NewOpenFoodFactsService(cfg.Fallback))
	}

	// 聊天記憶：使用 redis 後端時一併保存於 redis
	var conversations assistant.ConversationStore = assistant.NewMemoryConversations(cfg.Chat.MemorySize)
	if redisClient != nil {
		conversations = assistant.NewRedisConversations(redisClient, cfg.Redis.KeyPrefix, cfg.Chat.MemorySize)
	}

	picker := assistant.NewPicker()
	router, err := api.SetupRouter(cfg, api.Dependencies{
		Engine:      engine,
		UserRecipes: users,
		Lookups:     lookups,
		Coach:       assistant.NewCoach(picker, time.Now),
		Suggester:   assistant.NewSuggester(cat),
		Chat:        assistant.NewChat(conversations, picker, cfg.Chat.MemorySize),
		Picker:      picker,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
