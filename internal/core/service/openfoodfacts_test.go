package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gofoody-ai/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *OpenFoodFactsService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenFoodFactsService(config.FallbackConfig{
		Enabled: true,
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})
}

func TestLookupKcalPicksFirstProductWithEnergy(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "quinoa", r.URL.Query().Get("search_terms"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"product_name":"Senza dati","nutriments":{}},
			{"product_name":"Quinoa bio","nutriments":{"energy-kcal_100g":"368"}}
		]}`))
	})

	name, kcal, err := svc.LookupKcal(context.Background(), "quinoa")
	require.NoError(t, err)
	assert.Equal(t, "Quinoa bio", name)
	assert.Equal(t, 368.0, kcal)
}

func TestLookupKcalNoProducts(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[]}`))
	})

	_, _, err := svc.LookupKcal(context.Background(), "xyzfoobar123")
	assert.ErrorIs(t, err, ErrNoProduct)
}

func TestLookupKcalUpstreamError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _, err := svc.LookupKcal(context.Background(), "quinoa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLookupKcalEmptyQuery(t *testing.T) {
	svc := NewOpenFoodFactsService(config.FallbackConfig{BaseURL: "http://127.0.0.1:1"})
	_, _, err := svc.LookupKcal(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNoProduct)
}
