package ai

import (
	"net/http"

	"gofoody-ai/internal/core/assistant"
	"gofoody-ai/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NutritionRequest BMI 評估請求
type NutritionRequest struct {
	Weight Number `json:"peso"`
	Height Number `json:"altezza"`
	Age    Number `json:"eta"`
	Sex    string `json:"sesso"`
}

// PantryRequest 儲藏室到期檢查請求
type PantryRequest struct {
	Items []assistant.PantryItem `json:"dispensa"`
}

// CoachRequest 教練訊息請求
type CoachRequest struct {
	BMI   Number `json:"bmi"`
	Diet  string `json:"dieta"`
	Trend string `json:"trend_peso"`
}

// ProcedureRequest 料理步驟請求
type ProcedureRequest struct {
	Title       string   `json:"titolo"`
	Ingredients []string `json:"ingredienti"`
	Diet        string   `json:"dieta"`
}

// bind 解析 JSON，失敗時寫入 400
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
		)
		common.WriteError(c, common.ErrInvalidRequest)
		return false
	}
	return true
}

// HandleNutrition 計算 BMI
func (h *Handler) HandleNutrition(c *gin.Context) {
	var req NutritionRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, assistant.EvaluateBMI(req.Weight.Float64(), req.Height.Float64(), int(req.Age), req.Sex))
}

// HandlePantry 列出即將到期的食材
func (h *Handler) HandlePantry(c *gin.Context) {
	var req PantryRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": assistant.ExpiryAlerts(req.Items, h.now())})
}

// HandleCoach 產生教練訊息
func (h *Handler) HandleCoach(c *gin.Context) {
	var req CoachRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"coach_message": h.coach.Message(req.BMI.Float64(), req.Diet, req.Trend)})
}

// HandleProcedure 產生料理步驟
func (h *Handler) HandleProcedure(c *gin.Context) {
	var req ProcedureRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"procedimento": assistant.Procedure(h.picker, req.Title, req.Ingredients, req.Diet)})
}

// HandleSuggest 依儲藏室推薦食譜
func (h *Handler) HandleSuggest(c *gin.Context) {
	var req assistant.SuggestRequest
	if !bind(c, &req) {
		return
	}

	recipes := h.suggester.Suggest(req)
	if recipes == nil {
		recipes = []assistant.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"ricette": recipes})
}
