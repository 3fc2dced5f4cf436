package meal

import (
	"strings"

	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/core/textnorm"
)

// Resolution 解析結果。SimpleFood 為 true 時代表名稱是營養資料庫中的單一食材，
// 不會再比對組合食譜；Template 為 nil 且 SimpleFood 為 false 代表查無結果。
type Resolution struct {
	Key        string
	Template   *catalog.RecipeTemplate
	Source     Source
	SimpleFood bool
}

// Found 是否找到食譜
func (r Resolution) Found() bool {
	return r.Template != nil
}

type namedSource struct {
	recipes RecipeSource
	source  Source
}

// Resolve 依序嘗試：單一食材 → 精確鍵 → 部分比對 → 模糊比對；
// 每一步都先查使用者食譜再查基礎食譜。不會回傳錯誤。
func (e *Engine) Resolve(raw string) Resolution {
	key := e.catalog.Aliases.Key(raw)
	if key == "" {
		return Resolution{}
	}
	if e.catalog.Nutrients.Has(key) {
		return Resolution{Key: key, SimpleFood: true}
	}

	sources := []namedSource{
		{recipes: e.user, source: SourceUser},
		{recipes: e.catalog.Recipes, source: SourceBase},
	}

	// 精確鍵
	for _, s := range sources {
		if tpl, ok := s.recipes.Get(key); ok {
			return Resolution{Key: key, Template: &tpl, Source: s.source}
		}
	}

	// 部分比對：名稱是鍵的子字串
	needle := textnorm.Spaced(key)
	for _, s := range sources {
		for _, k := range s.recipes.Keys() {
			if !strings.Contains(textnorm.Spaced(k), needle) {
				continue
			}
			if tpl, ok := s.recipes.Get(k); ok {
				return Resolution{Key: k, Template: &tpl, Source: s.source}
			}
		}
	}

	// 模糊比對：同分時保留先出現的（使用者食譜）
	var (
		bestKey    string
		bestSource RecipeSource
		bestScore  float64
	)
	for _, s := range sources {
		for _, k := range s.recipes.Keys() {
			score := textnorm.Similarity(needle, textnorm.Spaced(k))
			if score > bestScore {
				bestKey, bestSource, bestScore = k, s.recipes, score
			}
		}
	}
	if bestSource != nil && bestScore >= e.fuzzyThreshold {
		if tpl, ok := bestSource.Get(bestKey); ok {
			return Resolution{Key: bestKey, Template: &tpl, Source: SourceFuzzy}
		}
	}

	return Resolution{Key: key}
}
