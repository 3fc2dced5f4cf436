// Package catalog holds the immutable reference data loaded at startup:
// nutrient entries, the alias table and the base recipe book.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gofoody-ai/internal/infrastructure/config"
	"gofoody-ai/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrNoNutrients 營養資料庫缺失或為空，屬於啟動時的致命錯誤
var ErrNoNutrients = errors.New("nutrient database is missing or empty")

// Catalog 啟動時載入的唯讀參考資料
type Catalog struct {
	Nutrients *NutrientDB
	Aliases   *AliasTable
	Recipes   *RecipeBook
}

// New 以記憶體中的資料建立 Catalog（測試與工具使用）
func New(nutrients []NutrientEntry, recipes map[string]RecipeTemplate, extraAliases map[string]string) *Catalog {
	aliases := NewAliasTable(extraAliases)
	return &Catalog{
		Nutrients: NewNutrientDB(nutrients, aliases),
		Aliases:   aliases,
		Recipes:   NewRecipeBook(recipes, aliases),
	}
}

// Load 從設定的檔案載入參考資料
func Load(cfg config.DataConfig) (*Catalog, error) {
	var extraAliases map[string]string
	if cfg.AliasesPath != "" {
		if err := common.ReadJSONFile(cfg.AliasesPath, &extraAliases); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to load aliases: %w", err)
			}
			common.LogWarn("Alias file not found, using built-in table",
				zap.String("path", cfg.AliasesPath),
			)
		}
	}

	var nutrients []NutrientEntry
	if err := common.ReadJSONFileStrict(cfg.NutrientsPath, &nutrients); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoNutrients, err)
	}

	recipes := map[string]RecipeTemplate{}
	if err := common.ReadJSONFileStrict(cfg.RecipesPath, &recipes); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load base recipes: %w", err)
		}
		common.LogWarn("Base recipe file not found, starting with an empty recipe book",
			zap.String("path", cfg.RecipesPath),
		)
	}

	cat := New(nutrients, recipes, extraAliases)
	if cat.Nutrients.Len() == 0 {
		return nil, ErrNoNutrients
	}

	common.LogInfo("Catalog loaded",
		zap.Int("nutrients", cat.Nutrients.Len()),
		zap.Int("base_recipes", cat.Recipes.Len()),
		zap.Int("aliases", cat.Aliases.Len()),
	)
	return cat, nil
}
