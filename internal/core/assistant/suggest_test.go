package assistant

import (
	"testing"

	"gofoody-ai/internal/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSuggestCatalog() *catalog.Catalog {
	return catalog.New(nil, map[string]catalog.RecipeTemplate{
		"pasta_al_pomodoro": {
			Title: "Pasta al pomodoro",
			Ingredients: []catalog.Ingredient{
				{Name: "pasta", BaseQuantityG: 100},
				{Name: "pomodoro", BaseQuantityG: 150},
				{Name: "olio", BaseQuantityG: 10},
				{Name: "basilico", BaseQuantityG: 5},
			},
		},
		"insalata_mista": {
			Title: "Insalata mista",
			Ingredients: []catalog.Ingredient{
				{Name: "lattuga", BaseQuantityG: 100},
				{Name: "pomodoro", BaseQuantityG: 80},
				{Name: "olio", BaseQuantityG: 10},
				{Name: "aceto", BaseQuantityG: 5},
			},
		},
		"tiramisu": {
			Title: "Tiramisù",
			Ingredients: []catalog.Ingredient{
				{Name: "mascarpone", BaseQuantityG: 250},
				{Name: "uova", BaseQuantityG: 120},
				{Name: "caffè", BaseQuantityG: 100},
			},
		},
	}, nil)
}

func TestSynonymTableIsSymmetric(t *testing.T) {
	aliases := catalog.NewAliasTable(nil)
	syn := NewSynonymTable(aliases, defaultSynonyms)

	pairs := [][2]string{
		{"pomodoro", "pelati"},
		{"olio", "olio_extravergine"},
		{"parmigiano", "grana"},
		{"pancetta", "guanciale"},
	}
	for _, p := range pairs {
		assert.True(t, syn.Related(p[0], p[1]), p)
		assert.True(t, syn.Related(p[1], p[0]), p)
	}
	assert.True(t, syn.Related("riso", "riso"))
	assert.False(t, syn.Related("riso", "pasta"))
	assert.False(t, syn.Related("pomodoro", "olio"))
}

func TestSuggestRanksByCoverage(t *testing.T) {
	s := NewSuggester(newSuggestCatalog())

	out := s.Suggest(SuggestRequest{Pantry: []string{"Pasta", "pomodori", "olio"}})
	require.Len(t, out, 2)

	assert.Equal(t, "Pasta al pomodoro", out[0].Name)
	assert.Equal(t, 0.75, out[0].Match)
	assert.Equal(t, []string{"basilico"}, out[0].Missing)

	assert.Equal(t, "Insalata mista", out[1].Name)
	assert.Equal(t, 0.5, out[1].Match)
}

func TestSuggestUsesSynonyms(t *testing.T) {
	s := NewSuggester(newSuggestCatalog())

	out := s.Suggest(SuggestRequest{Pantry: []string{"insalata", "pelati"}})
	require.NotEmpty(t, out)
	assert.Equal(t, "Insalata mista", out[0].Name)
	assert.Equal(t, 0.5, out[0].Match)
}

func TestSuggestExcludesAllergies(t *testing.T) {
	s := NewSuggester(newSuggestCatalog())

	out := s.Suggest(SuggestRequest{
		Pantry:    []string{"pomodoro", "olio", "uova"},
		Allergies: []string{"aceto", "uovo"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Pasta al pomodoro", out[0].Name)
}

func TestSuggestPreferenceBonus(t *testing.T) {
	s := NewSuggester(newSuggestCatalog())

	out := s.Suggest(SuggestRequest{
		Pantry:      []string{"pomodoro", "olio"},
		Preferences: []string{"insalata"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "Insalata mista", out[0].Name)
	assert.Equal(t, 0.6, out[0].Match)
	assert.Equal(t, 0.5, out[1].Match)
}

func TestSuggestNoMatch(t *testing.T) {
	s := NewSuggester(newSuggestCatalog())
	assert.Empty(t, s.Suggest(SuggestRequest{Pantry: []string{"cioccolato"}}))
	assert.Empty(t, s.Suggest(SuggestRequest{}))
}
