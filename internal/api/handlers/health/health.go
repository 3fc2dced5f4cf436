package health

import (
	"net/http"
	"runtime"
	"time"

	"gofoody-ai/internal/core/cache"
	"gofoody-ai/internal/core/catalog"
	"gofoody-ai/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserStore 使用者食譜儲存的狀態
type UserStore interface {
	Len() int
	Backend() string
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Version     string                 `json:"version"`
	Catalog     CatalogStatus          `json:"catalog"`
	UserRecipes UserRecipesStatus      `json:"user_recipes"`
	Cache       map[string]interface{} `json:"cache,omitempty"`
	Routes      []string               `json:"routes"`
	Runtime     map[string]interface{} `json:"runtime"`
}

// CatalogStatus 參考資料筆數
type CatalogStatus struct {
	Nutrients   int `json:"nutrients"`
	BaseRecipes int `json:"base_recipes"`
	Aliases     int `json:"aliases"`
}

// UserRecipesStatus 使用者食譜狀態
type UserRecipesStatus struct {
	Backend string `json:"backend"`
	Count   int    `json:"count"`
}

// Handler 健康檢查處理程序
type Handler struct {
	version string
	catalog *catalog.Catalog
	users   UserStore
	lookups *cache.CacheManager
	routes  []string
}

// NewHandler 創建健康檢查處理程序；routes 於路由註冊完成後以 SetRoutes 設定
func NewHandler(version string, cat *catalog.Catalog, users UserStore, lookups *cache.CacheManager) *Handler {
	return &Handler{
		version: version,
		catalog: cat,
		users:   users,
		lookups: lookups,
	}
}

// SetRoutes 設定對外公開的路由列表
func (h *Handler) SetRoutes(routes []string) {
	h.routes = routes
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Catalog: CatalogStatus{
			Nutrients:   h.catalog.Nutrients.Len(),
			BaseRecipes: h.catalog.Recipes.Len(),
			Aliases:     h.catalog.Aliases.Len(),
		},
		Cache:  h.lookups.GetStats(),
		Routes: h.routes,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":  m.Alloc,
				"sys":    m.Sys,
				"num_gc": m.NumGC,
			},
		},
	}
	if h.users != nil {
		response.UserRecipes = UserRecipesStatus{Backend: h.users.Backend(), Count: h.users.Len()}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 參考資料已載入即就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.catalog == nil || h.catalog.Nutrients.Len() == 0 {
		common.WriteError(c, common.ErrServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
