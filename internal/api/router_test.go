package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gofoody-ai/internal/core/assistant"
	"gofoody-ai/internal/core/cache"
	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/core/meal"
	"gofoody-ai/internal/core/store"
	"gofoody-ai/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key-123456"

func init() {
	gin.SetMode(gin.TestMode)
}

// firstPicker 總是選第一個選項
type firstPicker struct{}

func (firstPicker) Intn(n int) int { return 0 }

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryBackend) {
	t.Helper()

	cat := catalog.New([]catalog.NutrientEntry{
		{Label: "Mela", KcalPer100g: 52, DefaultWeightG: 150},
		{Label: "Pasta", KcalPer100g: 350},
		{Label: "Pomodoro", KcalPer100g: 18},
		{Label: "Basilico", KcalPer100g: 23},
	}, map[string]catalog.RecipeTemplate{
		"pasta_al_pomodoro": {
			Title:            "Pasta al pomodoro",
			ReferenceWeightG: 300,
			Ingredients: []catalog.Ingredient{
				{Name: "pasta", BaseQuantityG: 100},
				{Name: "pomodoro", BaseQuantityG: 150},
				{Name: "basilico", BaseQuantityG: 5},
			},
		},
	}, nil)

	backend := store.NewMemoryBackend()
	users := store.NewUserRecipes(context.Background(), backend, cat.Aliases)
	lookups := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Hour})

	cfg := &config.Config{
		App:    config.AppConfig{Version: "test"},
		Server: config.ServerConfig{MaxBodyBytes: 1 << 20, RequestTimeout: 5 * time.Second},
		Auth:   config.AuthConfig{APIKey: testKey},
	}

	picker := firstPicker{}
	router, err := SetupRouter(cfg, Dependencies{
		Engine:      meal.NewEngine(cat, users, lookups, meal.Options{}),
		UserRecipes: users,
		Lookups:     lookups,
		Coach:       assistant.NewCoach(picker, time.Now),
		Suggester:   assistant.NewSuggester(cat),
		Chat:        assistant.NewChat(assistant.NewMemoryConversations(10), picker, 10),
		Picker:      picker,
	})
	require.NoError(t, err)
	return router, backend
}

func post(r http.Handler, path, body string, auth bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+testKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSetupRouterRejectsMissingDependencies(t *testing.T) {
	_, err := SetupRouter(&config.Config{}, Dependencies{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	catalogStatus := body["catalog"].(map[string]interface{})
	assert.Equal(t, 4.0, catalogStatus["nutrients"])
	assert.Equal(t, 1.0, catalogStatus["base_recipes"])
	assert.Equal(t, "memory", body["user_recipes"].(map[string]interface{})["backend"])
	assert.Contains(t, body["routes"], "POST /ai/meal")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMealRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/meal", `{"alimento":"mela"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "API key missing", decode(t, w)["message"])

	req := httptest.NewRequest(http.MethodPost, "/ai/meal", strings.NewReader(`{"alimento":"mela"}`))
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMealRecipe(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/meal", `{"alimento":"Pasta al pomodoro","quantita":"600 g","porzioni":"1"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Pasta al pomodoro", body["titolo"])
	assert.Equal(t, "base", body["fonte"])
	assert.Equal(t, 2.0, body["fattore_scala"])
	assert.Len(t, body["ingredienti"], 3)
	// 200g pasta 700 + 300g pomodoro 54 + 10g basilico 2.3
	assert.InDelta(t, 756.3, body["kcal_totali"], 0.01)
}

func TestMealSynthesizedAndPersisted(t *testing.T) {
	r, backend := newTestRouter(t)

	w := post(r, "/ai/meal", `{"alimento":"mela","quantita":"150 g"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "synthesized", body["fonte"])
	assert.InDelta(t, 78.0, body["kcal_totali"], 0.01)
	assert.Equal(t, 1, backend.Flushes())

	w = post(r, "/ai/meal", `{"alimento":"mela","quantita":150}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", decode(t, w)["fonte"])
}

func TestMealNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/meal", `{"alimento":"xyzzy","quantita":"100 g"}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RICETTA_NON_TROVATA", decode(t, w)["error"])
}

func TestMealInvalidBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/meal", `{"quantita":"100 g"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/ai/meal", `not json`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNutrition(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/nutrizione", `{"peso":"70","altezza":175,"eta":30,"sesso":"M"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.InDelta(t, 22.9, body["bmi"], 0.001)

	w = post(r, "/ai/nutrizione", `{"peso":70}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["bmi"])
}

func TestPantry(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/dispensa", `{"dispensa":[{"nome":"latte","scadenza":"2000-01-01"}]}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	alerts := decode(t, w)["alert"].([]interface{})
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "Latte")

	w = post(r, "/ai/dispensa", `{"dispensa":[]}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{assistant.AllGoodMessage}, decode(t, w)["alert"])
}

func TestCoachAndProcedure(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/coach", `{"bmi":22,"dieta":"mediterranea","trend_peso":"stabile"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["coach_message"])

	w = post(r, "/ai/procedimento", `{"titolo":"Pasta","ingredienti":[]}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, assistant.NoIngredientsMessage, decode(t, w)["procedimento"])
}

func TestSuggest(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/ricetta", `{"dispensa":["pasta","pomodori"]}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	recipes := decode(t, w)["ricette"].([]interface{})
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pasta al pomodoro", recipes[0].(map[string]interface{})["nome"])

	w = post(r, "/ai/ricetta", `{"dispensa":["sale"]}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["ricette"])
}

func TestChatWithoutAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := post(r, "/ai/chat", `{"prompt":"","id_utente":1}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, assistant.EmptyPromptReply, decode(t, w)["risposta"])

	w = post(r, "/ai/chat", `{"prompt":"ciao","id_utente":1}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["risposta"], "GoFoody")
}
