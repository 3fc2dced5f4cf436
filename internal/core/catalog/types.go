package catalog

const (
	// DefaultReferenceWeightG 食譜未指定整份重量時使用的基準
	DefaultReferenceWeightG = 300.0
)

// NutrientEntry 營養資料庫條目
type NutrientEntry struct {
	Key            string  `json:"-"`
	Label          string  `json:"nome"`
	KcalPer100g    float64 `json:"kcal_100g"`
	DefaultWeightG float64 `json:"peso_unitario_g,omitempty"` // 單件重量，用於「個數」換算
}

// Ingredient 食譜中的食材
type Ingredient struct {
	Name          string  `json:"nome"`
	BaseQuantityG float64 `json:"quantita_g"`
}

// RecipeTemplate 食譜模板
type RecipeTemplate struct {
	Title            string       `json:"titolo"`
	ReferenceWeightG float64      `json:"peso_totale_piatto_g,omitempty"`
	Ingredients      []Ingredient `json:"ingredienti"`
}

// ReferenceWeight 回傳整份重量，未設定時為 DefaultReferenceWeightG
func (r RecipeTemplate) ReferenceWeight() float64 {
	if r.ReferenceWeightG <= 0 {
		return DefaultReferenceWeightG
	}
	return r.ReferenceWeightG
}

// Valid 是否可被持久化：整份重量 > 0 且至少一個食材份量 > 0
func (r RecipeTemplate) Valid() bool {
	if r.ReferenceWeight() <= 0 {
		return false
	}
	for _, ing := range r.Ingredients {
		if ing.BaseQuantityG > 0 {
			return true
		}
	}
	return false
}

// Clone 深拷貝，避免呼叫端修改共享的食材切片
func (r RecipeTemplate) Clone() RecipeTemplate {
	out := r
	out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	return out
}
