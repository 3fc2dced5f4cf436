package meal

import (
	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/core/textnorm"
)

// KcalFor 計算指定克數的熱量；查無食材時回傳 0
func (e *Engine) KcalFor(name string, grams float64) float64 {
	if grams <= 0 {
		return 0
	}
	entry, ok := e.LookupNutrient(name)
	if !ok {
		return 0
	}
	return grams * entry.KcalPer100g / 100
}

// LookupNutrient 先以標準鍵精確查詢，失敗時對所有鍵做模糊比對
func (e *Engine) LookupNutrient(name string) (catalog.NutrientEntry, bool) {
	key := e.catalog.Aliases.Key(name)
	if key == "" {
		return catalog.NutrientEntry{}, false
	}
	if entry, ok := e.catalog.Nutrients.Lookup(key); ok {
		return entry, true
	}

	match, ok := e.fuzzyNutrientKey(key)
	if !ok {
		return catalog.NutrientEntry{}, false
	}
	return e.catalog.Nutrients.Lookup(match)
}

// fuzzyNutrientKey 營養資料不會變動，結果（包含查無）可以直接快取
func (e *Engine) fuzzyNutrientKey(key string) (string, bool) {
	if cached, ok := e.lookups.Get(key); ok {
		return cached, cached != ""
	}

	var best string
	var bestScore float64
	for _, k := range e.catalog.Nutrients.Keys() {
		if score := textnorm.Similarity(key, k); score > bestScore {
			best, bestScore = k, score
		}
	}
	if bestScore < e.fuzzyThreshold {
		best = ""
	}

	e.lookups.Set(key, best)
	return best, best != ""
}
