package meal

import (
	"context"

	"gofoody-ai/internal/core/textnorm"
	"gofoody-ai/internal/pkg/common"

	"go.uber.org/zap"
)

// remoteMeal 以外部來源的熱量組成單一食材餐點，不寫入使用者食譜
func (e *Engine) remoteMeal(ctx context.Context, raw string, q Quantity, portions float64) (*ResolvedMeal, error) {
	query := textnorm.NormalizeDish(raw)
	if query == "" {
		return nil, ErrNotFound
	}

	product, kcal100, err := e.remote.LookupKcal(ctx, query)
	if err != nil {
		common.LogWarn("Remote nutrient lookup failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}

	grams := e.ToGrams(raw, q)
	if grams <= 0 {
		grams = DefaultSynthesisG
	}
	final := grams * portions
	kcal := common.Round(final*kcal100/100, 1)

	return &ResolvedMeal{
		Title:         product,
		OriginalQuery: raw,
		Portions:      portions,
		ScaleFactor:   1.0,
		Source:        SourceRemote,
		Ingredients: []MealIngredient{{
			Name:      query,
			QuantityG: common.Round(final, 1),
			Kcal:      kcal,
		}},
		TotalKcal: kcal,
	}, nil
}
