package common

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// Round 四捨五入到指定小數位
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// WriteError 寫入錯誤響應並中止請求
func WriteError(c *gin.Context, err *CustomError) {
	c.AbortWithStatusJSON(err.Status, ErrorResponse{
		Error:   err.Code,
		Message: err.Message,
	})
}
