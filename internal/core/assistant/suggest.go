package assistant

import (
	"sort"
	"strings"

	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/core/textnorm"
	"gofoody-ai/internal/pkg/common"
)

const (
	// preferenceBonus 標題包含偏好字詞時的加分
	preferenceBonus = 0.1
	// maxSuggestions 最多回傳的建議數
	maxSuggestions = 5
)

// defaultSynonyms 在儲藏室比對時視為可互相替代的食材
var defaultSynonyms = [][]string{
	{"pomodoro", "pelati", "passata", "polpa pomodoro"},
	{"olio", "olio evo", "olio oliva", "olio extravergine"},
	{"parmigiano", "grana", "grana padano", "parmigiano reggiano"},
	{"lattuga", "insalata", "iceberg"},
	{"panna", "panna cucina"},
	{"pancetta", "guanciale"},
	{"burro", "margarina"},
	{"cipolla", "scalogno"},
}

// SynonymTable 對稱的同義關係：a 與 b 同組時 Related(a, b) == Related(b, a)
type SynonymTable struct {
	group map[string]int
}

// NewSynonymTable 以群組建立；名稱會先轉成標準鍵
func NewSynonymTable(aliases *catalog.AliasTable, groups [][]string) *SynonymTable {
	t := &SynonymTable{group: map[string]int{}}
	for i, g := range groups {
		for _, name := range g {
			if key := aliases.Key(name); key != "" {
				t.group[key] = i
			}
		}
	}
	return t
}

// Related 兩個標準鍵是否相同或屬於同一組
func (t *SynonymTable) Related(a, b string) bool {
	if a == b {
		return true
	}
	ga, okA := t.group[a]
	gb, okB := t.group[b]
	return okA && okB && ga == gb
}

// SuggestRequest 依儲藏室推薦食譜的條件
type SuggestRequest struct {
	Pantry      []string `json:"dispensa"`
	Diet        string   `json:"dieta"`
	Allergies   []string `json:"allergie"`
	Preferences []string `json:"preferenze"`
}

// Suggestion 推薦結果
type Suggestion struct {
	Name        string   `json:"nome"`
	Key         string   `json:"chiave"`
	Match       float64  `json:"match"`
	Ingredients []string `json:"ingredienti"`
	Missing     []string `json:"mancanti"`
}

// Suggester 以基礎食譜計算儲藏室覆蓋率
type Suggester struct {
	catalog  *catalog.Catalog
	synonyms *SynonymTable
}

// NewSuggester 建立 Suggester，使用內建同義詞
func NewSuggester(cat *catalog.Catalog) *Suggester {
	return &Suggester{
		catalog:  cat,
		synonyms: NewSynonymTable(cat.Aliases, defaultSynonyms),
	}
}

// Suggest 覆蓋率 = 儲藏室中有的食材 / 食譜食材數；含過敏原的食譜會被排除，
// 標題包含偏好字詞加 0.1（上限 1）。只回傳覆蓋率 > 0 的前五名。
func (s *Suggester) Suggest(req SuggestRequest) []Suggestion {
	pantry := s.keys(req.Pantry)
	allergies := s.keys(req.Allergies)

	var prefs []string
	for _, p := range req.Preferences {
		if n := textnorm.NormalizeDish(p); n != "" {
			prefs = append(prefs, n)
		}
	}

	var out []Suggestion
	for _, key := range s.catalog.Recipes.Keys() {
		tpl, ok := s.catalog.Recipes.Get(key)
		if !ok {
			continue
		}

		ingredients := s.ingredientKeys(tpl)
		if len(ingredients) == 0 || s.containsAny(ingredients, allergies) {
			continue
		}

		var have int
		var missing []string
		for _, ing := range ingredients {
			if s.containsAny([]string{ing}, pantry) {
				have++
			} else {
				missing = append(missing, textnorm.Spaced(ing))
			}
		}
		if have == 0 {
			continue
		}

		match := float64(have) / float64(len(ingredients))
		title := textnorm.NormalizeDish(tpl.Title)
		for _, p := range prefs {
			if strings.Contains(title, p) {
				match += preferenceBonus
				break
			}
		}
		if match > 1 {
			match = 1
		}

		names := make([]string, len(ingredients))
		for i, ing := range ingredients {
			names[i] = textnorm.Spaced(ing)
		}
		out = append(out, Suggestion{
			Name:        tpl.Title,
			Key:         key,
			Match:       common.Round(match, 2),
			Ingredients: names,
			Missing:     missing,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match > out[j].Match
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// keys 轉成去重後的標準鍵
func (s *Suggester) keys(names []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, n := range names {
		k := s.catalog.Aliases.Key(n)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// ingredientKeys 食譜中份量 > 0 的食材鍵，依原順序去重
func (s *Suggester) ingredientKeys(tpl catalog.RecipeTemplate) []string {
	names := make([]string, 0, len(tpl.Ingredients))
	for _, ing := range tpl.Ingredients {
		if ing.BaseQuantityG > 0 {
			names = append(names, ing.Name)
		}
	}
	return s.keys(names)
}

func (s *Suggester) containsAny(set, candidates []string) bool {
	for _, a := range set {
		for _, b := range candidates {
			if s.synonyms.Related(a, b) {
				return true
			}
		}
	}
	return false
}
