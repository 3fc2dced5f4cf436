package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/infrastructure/config"
	"gofoody-ai/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Backend 使用者食譜的外部儲存；每次 Flush 都整份覆寫
type Backend interface {
	Load(ctx context.Context) (map[string]catalog.RecipeTemplate, error)
	Flush(ctx context.Context, recipes map[string]catalog.RecipeTemplate) error
	Name() string
}

// FileBackend 以 JSON 檔儲存，寫入時透過暫存檔 rename 保證原子性
type FileBackend struct {
	path string
}

// NewFileBackend 建立檔案後端
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load 讀取檔案；檔案不存在時回傳空集合
func (b *FileBackend) Load(ctx context.Context) (map[string]catalog.RecipeTemplate, error) {
	recipes := map[string]catalog.RecipeTemplate{}
	if err := common.ReadJSONFile(b.path, &recipes); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]catalog.RecipeTemplate{}, nil
		}
		return nil, fmt.Errorf("failed to read user recipes: %w", err)
	}
	return recipes, nil
}

// Flush 寫入整份集合
func (b *FileBackend) Flush(ctx context.Context, recipes map[string]catalog.RecipeTemplate) error {
	if err := common.WriteJSONFile(b.path, recipes); err != nil {
		return fmt.Errorf("failed to write user recipes: %w", err)
	}
	return nil
}

// Name 後端名稱
func (b *FileBackend) Name() string { return "file" }

// MemoryBackend 只存在於行程內，重啟後遺失
type MemoryBackend struct {
	mu       sync.Mutex
	snapshot map[string]catalog.RecipeTemplate
	flushes  int
}

// NewMemoryBackend 建立記憶體後端
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load 回傳最後一次 Flush 的內容
func (b *MemoryBackend) Load(ctx context.Context) (map[string]catalog.RecipeTemplate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneRecipes(b.snapshot), nil
}

// Flush 保存一份快照
func (b *MemoryBackend) Flush(ctx context.Context, recipes map[string]catalog.RecipeTemplate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = cloneRecipes(recipes)
	b.flushes++
	return nil
}

// Flushes 已執行的 Flush 次數
func (b *MemoryBackend) Flushes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushes
}

// Name 後端名稱
func (b *MemoryBackend) Name() string { return "memory" }

func cloneRecipes(in map[string]catalog.RecipeTemplate) map[string]catalog.RecipeTemplate {
	out := make(map[string]catalog.RecipeTemplate, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}

// NewBackend 依設定選擇後端；redis 後端需要已連線的 client
func NewBackend(cfg *config.Config, client *redis.Client) (Backend, error) {
	switch cfg.Store.Backend {
	case "file":
		return NewFileBackend(cfg.Data.UserRecipesPath), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis backend requires a redis client")
		}
		return NewRedisBackend(client, cfg.Redis.KeyPrefix), nil
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
