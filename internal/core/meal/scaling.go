package meal

import (
	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/pkg/common"
)

// MealIngredient 縮放後的食材
type MealIngredient struct {
	Name      string  `json:"nome"`
	QuantityG float64 `json:"quantita_g"`
	Kcal      float64 `json:"kcal"`
}

// ResolvedMeal 回應用的餐點，不會被保存
type ResolvedMeal struct {
	Title         string           `json:"titolo"`
	OriginalQuery string           `json:"alimento_originale"`
	Portions      float64          `json:"porzioni"`
	ScaleFactor   float64          `json:"fattore_scala"`
	Source        Source           `json:"fonte"`
	Ingredients   []MealIngredient `json:"ingredienti"`
	TotalKcal     float64          `json:"kcal_totali"`
}

// ScaleFactor 要求克數 / 食譜整份重量；任一方 ≤ 0 時為 1
func (e *Engine) ScaleFactor(raw string, q Quantity, tpl catalog.RecipeTemplate) float64 {
	grams := e.ToGrams(raw, q)
	ref := tpl.ReferenceWeight()
	if grams <= 0 || ref <= 0 {
		return 1.0
	}
	return grams / ref
}

// BuildMeal 將每個食材乘上 factor × portions 並計算熱量。
// 數量與熱量取一位小數，總熱量由取整後的數值加總。
func (e *Engine) BuildMeal(tpl catalog.RecipeTemplate, factor, portions float64) ResolvedMeal {
	if factor <= 0 {
		factor = 1
	}
	if portions <= 0 {
		portions = 1
	}

	m := ResolvedMeal{
		Title:       tpl.Title,
		Portions:    portions,
		ScaleFactor: common.Round(factor, 3),
		Ingredients: make([]MealIngredient, 0, len(tpl.Ingredients)),
	}

	var total float64
	for _, ing := range tpl.Ingredients {
		if ing.BaseQuantityG <= 0 {
			continue
		}
		final := ing.BaseQuantityG * factor * portions
		if final <= 0 {
			continue
		}
		kcal := common.Round(e.KcalFor(ing.Name, final), 1)
		m.Ingredients = append(m.Ingredients, MealIngredient{
			Name:      ing.Name,
			QuantityG: common.Round(final, 1),
			Kcal:      kcal,
		})
		total += kcal
	}
	m.TotalKcal = common.Round(total, 1)
	return m
}
