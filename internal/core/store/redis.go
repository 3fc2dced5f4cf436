package store

import (
	"context"
	"fmt"

	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/infrastructure/config"
	"gofoody-ai/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// userRecipesKey 整份使用者食譜集合存放的鍵（加上前綴）
const userRecipesKey = "user_recipes"

// NewRedisClient 建立 Redis 連線並測試
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisBackend 將整份集合序列化為單一 JSON 值
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend 建立 Redis 後端
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, key: prefix + userRecipesKey}
}

// Load 讀取集合；鍵不存在時回傳空集合
func (b *RedisBackend) Load(ctx context.Context) (map[string]catalog.RecipeTemplate, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return map[string]catalog.RecipeTemplate{}, nil
		}
		return nil, fmt.Errorf("failed to get user recipes: %w", err)
	}

	recipes := map[string]catalog.RecipeTemplate{}
	if err := common.ParseJSONBytes(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user recipes: %w", err)
	}
	return recipes, nil
}

// Flush 以單一 SET 覆寫整份集合，不設過期時間
func (b *RedisBackend) Flush(ctx context.Context, recipes map[string]catalog.RecipeTemplate) error {
	data, err := common.ToJSON(recipes)
	if err != nil {
		return fmt.Errorf("failed to marshal user recipes: %w", err)
	}
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set user recipes: %w", err)
	}
	return nil
}

// Name 後端名稱
func (b *RedisBackend) Name() string { return "redis" }
