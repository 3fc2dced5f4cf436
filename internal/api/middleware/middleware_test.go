package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyAuth(t *testing.T) {
	r := newRouter(APIKeyAuth("secret-key"))

	w := do(r, http.MethodPost, "/ok", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key missing")

	w = do(r, http.MethodPost, "/ok", "Token secret-key", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/ok", "Bearer wrong", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")

	w = do(r, http.MethodPost, "/ok", "Bearer secret-key", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	r := newRouter(Recovery(), Logger())

	w := do(r, http.MethodGet, "/panic", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestBodySizeLimit(t *testing.T) {
	r := newRouter(BodySizeLimit(10))

	w := do(r, http.MethodPost, "/ok", "", strings.Repeat("x", 100))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = do(r, http.MethodPost, "/ok", "", "{}")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	now := time.Now()
	rl.lastTime = now
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	now = now.Add(600 * time.Millisecond)
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}

func TestRateLimitPerClient(t *testing.T) {
	r := newRouter(RateLimit(1, time.Minute))

	first := httptest.NewRequest(http.MethodPost, "/ok", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, first)
	require.Equal(t, http.StatusOK, w.Code)

	again := httptest.NewRequest(http.MethodPost, "/ok", nil)
	again.RemoteAddr = "10.0.0.1:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, again)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	other := httptest.NewRequest(http.MethodPost, "/ok", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeoutWritesGatewayTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := do(r, http.MethodGet, "/slow", "", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "GATEWAY_TIMEOUT")

	w = do(r, http.MethodGet, "/fast", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientLimitersPruneIdleEntries(t *testing.T) {
	now := time.Now()
	clients := newClientLimiters(2, time.Minute)
	clients.now = func() time.Time { return now }
	clients.lastPrune = now

	clients.get("10.0.0.1").Allow()
	clients.get("10.0.0.2").Allow()
	require.Equal(t, 2, clients.size())

	now = now.Add(30 * time.Second)
	clients.get("10.0.0.2").Allow()
	assert.Equal(t, 2, clients.size())

	// 10.0.0.1 已閒置超過一個視窗，10.0.0.2 尚未
	now = now.Add(40 * time.Second)
	clients.get("10.0.0.3")
	assert.Equal(t, 2, clients.size())
	_, ok := clients.limiters["10.0.0.1"]
	assert.False(t, ok)
}
