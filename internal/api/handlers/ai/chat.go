package ai

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatRequest 聊天請求
type ChatRequest struct {
	Prompt string `json:"prompt"`
	UserID Number `json:"id_utente"`
}

// HandleChat 關鍵字聊天，不需驗證
func (h *Handler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"risposta": h.chat.Reply(c.Request.Context(), int64(req.UserID), req.Prompt)})
}
