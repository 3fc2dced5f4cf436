package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gofoody-ai/internal/core/meal"
	"gofoody-ai/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MealRequest 餐點解析請求
type MealRequest struct {
	Food     string        `json:"alimento" binding:"required"` // 食物或料理名稱
	Quantity meal.Quantity `json:"quantita"`                    // 數字（克）或文字，如 "2 pz"
	Portions Number        `json:"porzioni"`                    // 份數，預設 1
}

// HandleMeal 解析食物並縮放為餐點
func (h *Handler) HandleMeal(c *gin.Context) {
	requestID := requestid.Get(c)
	start := time.Now()

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, common.ErrInvalidRequest)
		return
	}

	result, err := h.engine.ResolveAndScaleMeal(c.Request.Context(), req.Food, req.Quantity, req.Portions.Float64())
	if err != nil {
		if errors.Is(err, meal.ErrNotFound) {
			common.LogResolution(req.Food, "not_found", time.Since(start), requestID)
			common.WriteError(c, common.ErrRecipeNotFound)
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			common.WriteError(c, common.ErrGatewayTimeout)
			return
		}
		common.LogError("餐點解析失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, common.AsCustomError(err))
		return
	}

	common.LogResolution(req.Food, string(result.Source), time.Since(start), requestID)
	c.JSON(http.StatusOK, result)
}
