// Package store keeps the mutable collection of recipes learned at runtime.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrInvalidRecipe 食譜沒有正的整份重量或沒有任何份量 > 0 的食材
var ErrInvalidRecipe = errors.New("recipe has no positive reference weight or ingredient")

// UserRecipes 使用者食譜集合；只會新增或覆寫，不會刪除
type UserRecipes struct {
	mu      sync.RWMutex
	flushMu sync.Mutex
	recipes map[string]catalog.RecipeTemplate
	backend Backend
	aliases *catalog.AliasTable
}

// NewUserRecipes 從後端載入集合；載入失敗時記錄警告並以空集合啟動
func NewUserRecipes(ctx context.Context, backend Backend, aliases *catalog.AliasTable) *UserRecipes {
	u := &UserRecipes{
		recipes: map[string]catalog.RecipeTemplate{},
		backend: backend,
		aliases: aliases,
	}

	loaded, err := backend.Load(ctx)
	if err != nil {
		common.LogWarn("Failed to load user recipes, starting empty",
			zap.String("backend", backend.Name()),
			zap.Error(err),
		)
		return u
	}

	for name, tpl := range loaded {
		key := aliases.Key(name)
		if key == "" || !tpl.Valid() {
			continue
		}
		u.recipes[key] = tpl.Clone()
	}

	common.LogInfo("User recipes loaded",
		zap.String("backend", backend.Name()),
		zap.Int("count", len(u.recipes)),
	)
	return u
}

// Get 精確查詢
func (u *UserRecipes) Get(key string) (catalog.RecipeTemplate, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	tpl, ok := u.recipes[key]
	if !ok {
		return catalog.RecipeTemplate{}, false
	}
	return tpl.Clone(), true
}

// Keys 依字母排序的所有鍵
func (u *UserRecipes) Keys() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	keys := make([]string, 0, len(u.recipes))
	for k := range u.recipes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len 食譜數
func (u *UserRecipes) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.recipes)
}

// Save 寫入（或覆寫）一筆食譜並同步整份寫回後端。
// 寫回失敗時食譜仍保留在記憶體中，錯誤交由呼叫端記錄。
func (u *UserRecipes) Save(ctx context.Context, key string, tpl catalog.RecipeTemplate) error {
	if key == "" || !tpl.Valid() {
		return ErrInvalidRecipe
	}

	// 寫入與 flush 串行化，後寫入者勝出
	u.flushMu.Lock()
	defer u.flushMu.Unlock()

	u.mu.Lock()
	u.recipes[key] = tpl.Clone()
	snapshot := cloneRecipes(u.recipes)
	u.mu.Unlock()

	return u.backend.Flush(ctx, snapshot)
}

// Backend 使用中的後端名稱
func (u *UserRecipes) Backend() string {
	return u.backend.Name()
}
