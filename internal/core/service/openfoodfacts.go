package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gofoody-ai/internal/infrastructure/config"
	"gofoody-ai/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNoProduct 查無具有熱量資料的產品
var ErrNoProduct = errors.New("no openfoodfacts product with energy data")

const searchPageSize = 5

// OpenFoodFactsService 以 OpenFoodFacts 搜尋每 100g 熱量，作為本地資料庫查無時的備援
type OpenFoodFactsService struct {
	client *resty.Client
}

// offSearchResponse 搜尋回應（僅取用需要的欄位）
type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offProduct struct {
	ProductName string                 `json:"product_name"`
	Nutriments  map[string]interface{} `json:"nutriments"`
}

// NewOpenFoodFactsService 建立 OpenFoodFacts 服務
func NewOpenFoodFactsService(cfg config.FallbackConfig) *OpenFoodFactsService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "gofoody-ai/1.0").
		SetHeader("Accept", "application/json")

	return &OpenFoodFactsService{client: client}
}

// LookupKcal 搜尋食物名稱，回傳第一個帶有 energy-kcal_100g 的產品
func (s *OpenFoodFactsService) LookupKcal(ctx context.Context, query string) (string, float64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", 0, ErrNoProduct
	}

	// 發送請求
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"search_terms":  query,
			"search_simple": "1",
			"action":        "process",
			"json":          "1",
			"page_size":     strconv.Itoa(searchPageSize),
		}).
		Get("/cgi/search.pl")
	if err != nil {
		return "", 0, fmt.Errorf("failed to send request to OpenFoodFacts: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", 0, fmt.Errorf("OpenFoodFacts returned status %d", resp.StatusCode())
	}

	// 解析回應
	var result offSearchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", 0, fmt.Errorf("failed to parse OpenFoodFacts response: %w", err)
	}

	for _, p := range result.Products {
		kcal, ok := parseFloatAny(p.Nutriments["energy-kcal_100g"])
		if !ok || kcal <= 0 {
			continue
		}
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			name = query
		}
		common.LogDebug("OpenFoodFacts match",
			zap.String("query", query),
			zap.String("product", name),
			zap.Float64("kcal_100g", kcal),
		)
		return name, kcal, nil
	}

	return "", 0, ErrNoProduct
}

func parseFloatAny(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
