package middleware

import (
	"crypto/subtle"
	"strings"

	"gofoody-ai/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// APIKeyAuth 驗證 Authorization: Bearer <key>；缺少時 401，不符時 403
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	expected := []byte(apiKey)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			common.LogWarn("API key missing",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
			)
			common.WriteError(c, common.ErrAPIKeyMissing)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			common.LogWarn("Invalid API key",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
				zap.String("request_id", requestid.Get(c)),
			)
			common.WriteError(c, common.ErrAPIKeyInvalid)
			return
		}

		c.Next()
	}
}
