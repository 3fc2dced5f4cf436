// Package meal resolves free-text food and dish names against the catalog,
// converts informal quantities to grams and scales recipes into meals with
// per-ingredient and total kcal.
package meal

import (
	"context"
	"errors"
	"math"
	"time"

	"gofoody-ai/internal/core/cache"
	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// DefaultPieceWeightG 食材沒有單件重量時，每件視為 100g
	DefaultPieceWeightG = 100.0
	// DefaultSynthesisG 合成食譜時查無份量的預設克數
	DefaultSynthesisG = 100.0
	// DefaultFuzzyThreshold 模糊比對的最低相似度
	DefaultFuzzyThreshold = 0.75
	// DefaultPieceThreshold 無單位時小於等於此數視為「個數」
	DefaultPieceThreshold = 5.0
)

// ErrNotFound 無法解析也無法合成的食物
var ErrNotFound = errors.New("food not recognized")

// Source 解析結果的來源
type Source string

const (
	SourceUser        Source = "user"
	SourceBase        Source = "base"
	SourceSynthesized Source = "synthesized"
	SourceFuzzy       Source = "fuzzy"
	SourceRemote      Source = "remote"
)

// RecipeSource 以標準鍵查詢的食譜集合
type RecipeSource interface {
	Get(key string) (catalog.RecipeTemplate, bool)
	Keys() []string
}

// UserStore 可寫入的使用者食譜集合
type UserStore interface {
	RecipeSource
	Save(ctx context.Context, key string, tpl catalog.RecipeTemplate) error
}

// RemoteLookup 外部營養資料來源，回傳產品名稱與每 100g 熱量
type RemoteLookup interface {
	LookupKcal(ctx context.Context, query string) (string, float64, error)
}

// Options 比對參數，零值使用預設
type Options struct {
	FuzzyThreshold float64
	PieceThreshold float64
}

// Engine 餐點解析引擎；參考資料唯讀，使用者食譜由 UserStore 管理
type Engine struct {
	catalog        *catalog.Catalog
	user           UserStore
	lookups        *cache.CacheManager
	remote         RemoteLookup
	fuzzyThreshold float64
	pieceThreshold float64
}

// NewEngine 建立引擎；lookups 可為 nil（不快取模糊查詢）
func NewEngine(cat *catalog.Catalog, user UserStore, lookups *cache.CacheManager, opts Options) *Engine {
	if opts.FuzzyThreshold <= 0 || opts.FuzzyThreshold > 1 {
		opts.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if opts.PieceThreshold <= 0 {
		opts.PieceThreshold = DefaultPieceThreshold
	}
	return &Engine{
		catalog:        cat,
		user:           user,
		lookups:        lookups,
		fuzzyThreshold: opts.FuzzyThreshold,
		pieceThreshold: opts.PieceThreshold,
	}
}

// WithRemote 設定外部備援來源
func (e *Engine) WithRemote(remote RemoteLookup) *Engine {
	e.remote = remote
	return e
}

// Catalog 唯讀參考資料
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// ResolveAndScaleMeal 解析食物名稱並依份量與份數縮放；無法辨識時回傳 ErrNotFound
func (e *Engine) ResolveAndScaleMeal(ctx context.Context, raw string, q Quantity, portions float64) (*ResolvedMeal, error) {
	start := time.Now()
	if portions <= 0 || math.IsNaN(portions) || math.IsInf(portions, 0) {
		portions = 1
	}

	tpl, source, ok := e.template(ctx, raw, q)
	if !ok {
		if e.remote != nil {
			if m, err := e.remoteMeal(ctx, raw, q, portions); err == nil {
				return m, nil
			}
		}
		common.LogDebug("Food not recognized", zap.String("query", raw))
		return nil, ErrNotFound
	}

	factor := e.ScaleFactor(raw, q, tpl)
	m := e.BuildMeal(tpl, factor, portions)
	m.OriginalQuery = raw
	m.Source = source

	common.LogDebug("Meal resolved",
		zap.String("query", raw),
		zap.String("source", string(source)),
		zap.Float64("factor", m.ScaleFactor),
		zap.Duration("duration", time.Since(start)),
	)
	return &m, nil
}

// template 依序嘗試：單一食材（使用者已學習者優先）→ 既有食譜 → 合成
func (e *Engine) template(ctx context.Context, raw string, q Quantity) (catalog.RecipeTemplate, Source, bool) {
	res := e.Resolve(raw)
	switch {
	case res.SimpleFood:
		if tpl, ok := e.user.Get(res.Key); ok {
			return tpl, SourceUser, true
		}
	case res.Found():
		return *res.Template, res.Source, true
	}

	tpl, ok := e.Synthesize(ctx, raw, q)
	if !ok {
		return catalog.RecipeTemplate{}, "", false
	}
	return *tpl, SourceSynthesized, true
}
