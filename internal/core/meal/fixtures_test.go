package meal

import (
	"context"
	"errors"
	"testing"
	"time"

	"gofoody-ai/internal/core/cache"
	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/core/store"
	"gofoody-ai/internal/infrastructure/config"
)

var testNutrients = []catalog.NutrientEntry{
	{Label: "Pollo", KcalPer100g: 165},
	{Label: "Mela", KcalPer100g: 52, DefaultWeightG: 150},
	{Label: "Pomodoro", KcalPer100g: 18},
	{Label: "Pasta", KcalPer100g: 350},
	{Label: "Uovo", KcalPer100g: 155, DefaultWeightG: 60},
	{Label: "Guanciale", KcalPer100g: 655},
	{Label: "Pecorino", KcalPer100g: 387},
	{Label: "Riso", KcalPer100g: 130},
	{Label: "Acqua", KcalPer100g: 0},
}

var testRecipes = map[string]catalog.RecipeTemplate{
	"spaghetti_alla_carbonara": {
		Title:            "Spaghetti alla carbonara",
		ReferenceWeightG: 400,
		Ingredients: []catalog.Ingredient{
			{Name: "spaghetti", BaseQuantityG: 200},
			{Name: "uova", BaseQuantityG: 120},
			{Name: "guanciale", BaseQuantityG: 50},
			{Name: "pecorino", BaseQuantityG: 30},
		},
	},
	"pasta_e_fagioli": {
		Title: "Pasta e fagioli",
		Ingredients: []catalog.Ingredient{
			{Name: "pasta", BaseQuantityG: 80},
			{Name: "fagioli", BaseQuantityG: 200},
			{Name: "sale", BaseQuantityG: 0},
		},
	},
	"pollo": {
		Title:       "Pollo al forno",
		Ingredients: []catalog.Ingredient{{Name: "pollo", BaseQuantityG: 250}},
	},
}

type testEnv struct {
	engine  *Engine
	user    *store.UserRecipes
	backend *store.MemoryBackend
	lookups *cache.CacheManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cat := catalog.New(testNutrients, testRecipes, nil)
	backend := store.NewMemoryBackend()
	user := store.NewUserRecipes(context.Background(), backend, cat.Aliases)
	lookups := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 100, TTL: time.Hour})
	return &testEnv{
		engine:  NewEngine(cat, user, lookups, Options{}),
		user:    user,
		backend: backend,
		lookups: lookups,
	}
}

// failingBackend 模擬無法寫回的儲存
type failingBackend struct{}

func (failingBackend) Load(ctx context.Context) (map[string]catalog.RecipeTemplate, error) {
	return nil, nil
}

func (failingBackend) Flush(ctx context.Context, recipes map[string]catalog.RecipeTemplate) error {
	return errors.New("disk full")
}

func (failingBackend) Name() string { return "failing" }

// fakeRemote 固定回傳的外部來源
type fakeRemote struct {
	name  string
	kcal  float64
	err   error
	calls int
}

func (f *fakeRemote) LookupKcal(ctx context.Context, query string) (string, float64, error) {
	f.calls++
	return f.name, f.kcal, f.err
}
