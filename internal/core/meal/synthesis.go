package meal

import (
	"context"

	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/core/textnorm"
	"gofoody-ai/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Synthesize 為單一食材建立食譜並寫入使用者食譜；熱量為 0 的食材視為無法辨識。
// 寫回失敗只記錄錯誤，仍回傳建立好的食譜。
func (e *Engine) Synthesize(ctx context.Context, raw string, q Quantity) (*catalog.RecipeTemplate, bool) {
	key := e.catalog.Aliases.Key(raw)
	if key == "" {
		return nil, false
	}

	grams := e.ToGrams(raw, q)
	if grams <= 0 {
		grams = DefaultSynthesisG
	}

	if e.KcalFor(key, grams) <= 0 && e.KcalFor(textnorm.Slugify(raw), grams) <= 0 {
		return nil, false
	}

	name := textnorm.Spaced(key)
	tpl := catalog.RecipeTemplate{
		Title:            cases.Title(language.Italian).String(name),
		ReferenceWeightG: grams,
		Ingredients:      []catalog.Ingredient{{Name: name, BaseQuantityG: grams}},
	}

	if err := e.user.Save(ctx, key, tpl); err != nil {
		common.LogError("Failed to persist synthesized recipe",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return &tpl, true
}
