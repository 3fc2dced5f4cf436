package ai

import (
	"time"

	"gofoody-ai/internal/core/assistant"
	"gofoody-ai/internal/core/meal"
)

// Handler /ai 路由的處理程序
type Handler struct {
	engine    *meal.Engine
	coach     *assistant.Coach
	suggester *assistant.Suggester
	chat      *assistant.Chat
	picker    assistant.Picker
	now       func() time.Time
}

// NewHandler 創建處理程序
func NewHandler(engine *meal.Engine, coach *assistant.Coach, suggester *assistant.Suggester, chat *assistant.Chat, picker assistant.Picker) *Handler {
	return &Handler{
		engine:    engine,
		coach:     coach,
		suggester: suggester,
		chat:      chat,
		picker:    picker,
		now:       time.Now,
	}
}
