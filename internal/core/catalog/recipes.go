package catalog

import (
	"sort"
)

// RecipeBook 唯讀的基礎食譜集合
type RecipeBook struct {
	recipes map[string]RecipeTemplate
	keys    []string
}

// NewRecipeBook 以標準鍵重新索引食譜，略過無效條目
func NewRecipeBook(raw map[string]RecipeTemplate, aliases *AliasTable) *RecipeBook {
	book := &RecipeBook{recipes: make(map[string]RecipeTemplate, len(raw))}

	// 排序後處理，讓鍵衝突時的結果可預期
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tpl := raw[name]
		key := aliases.Key(name)
		if key == "" || !tpl.Valid() {
			continue
		}
		if _, exists := book.recipes[key]; exists {
			continue
		}
		if tpl.Title == "" {
			tpl.Title = name
		}
		book.recipes[key] = tpl.Clone()
		book.keys = append(book.keys, key)
	}
	sort.Strings(book.keys)
	return book
}

// Get 精確查詢
func (b *RecipeBook) Get(key string) (RecipeTemplate, bool) {
	if b == nil {
		return RecipeTemplate{}, false
	}
	tpl, ok := b.recipes[key]
	if !ok {
		return RecipeTemplate{}, false
	}
	return tpl.Clone(), true
}

// Keys 依字母排序的所有鍵
func (b *RecipeBook) Keys() []string {
	if b == nil {
		return nil
	}
	return b.keys
}

// Len 食譜數
func (b *RecipeBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.recipes)
}
