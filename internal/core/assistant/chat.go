package assistant

import (
	"context"
	"strings"
	"time"

	"gofoody-ai/internal/pkg/common"

	"go.uber.org/zap"
)

// EmptyPromptReply 沒有輸入時的回覆
const EmptyPromptReply = "Scrivimi qualcosa 😊"

const recallPrefix = "Ne avevamo già parlato! Ti avevo detto: "

// keywordReplies 依序比對，第一個命中的關鍵字決定回覆
var keywordReplies = []struct {
	keywords []string
	reply    string
}{
	{[]string{"ciao", "salve"}, "Ciao 👋! Sono GoFoody AI, il tuo assistente in cucina. Cosa vuoi cucinare oggi?"},
	{[]string{"ricetta"}, "Certo! Dimmi cosa hai in dispensa e ti suggerisco un piatto adatto 🍝"},
	{[]string{"dispensa"}, "Apri la tua dispensa digitale: posso dirti cosa consumare prima per evitare sprechi 🧺"},
	{[]string{"dieta", "alimentazione"}, "Vuoi un consiglio per la tua dieta? Posso adattare i suggerimenti alla dieta Mediterranea, Vegana o Vegetariana 🥦"},
	{[]string{"consiglio", "help", "aiuto"}, "Eccomi 👨‍🍳! Posso aiutarti a creare un piano alimentare, trovare ricette o gestire la tua dispensa!"},
}

var fallbackReplies = []string{
	"Interessante! Raccontami meglio cosa vuoi preparare 🍽️",
	"Mh, non ho capito bene... vuoi un consiglio su una ricetta o sulla dieta?",
	"Posso cercare tra le tue ricette preferite per aiutarti 💡",
	"Parlami di cosa hai in dispensa e troveremo insieme qualcosa di buono 😋",
}

// Chat 以關鍵字與近期對話記憶回覆
type Chat struct {
	store  ConversationStore
	picker Picker
	limit  int
	now    func() time.Time
}

// NewChat 建立 Chat；limit 為回想時讀取的最近問答數
func NewChat(store ConversationStore, picker Picker, limit int) *Chat {
	return &Chat{store: store, picker: picker, limit: limit, now: time.Now}
}

// Reply 產生回覆並記錄本次問答。記憶讀寫失敗只記錄警告，不影響回覆。
func (c *Chat) Reply(ctx context.Context, userID int64, prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return EmptyPromptReply
	}

	history, err := c.store.Recent(ctx, userID, c.limit)
	if err != nil {
		common.LogWarn("Failed to load chat memory",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	reply := c.answer(prompt, history)

	ex := Exchange{
		ID:        common.GenerateUUID(),
		Prompt:    prompt,
		Reply:     reply,
		CreatedAt: c.now(),
	}
	if err := c.store.Append(ctx, userID, ex); err != nil {
		common.LogWarn("Failed to save chat memory",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
	return reply
}

func (c *Chat) answer(prompt string, history []Exchange) string {
	p := strings.ToLower(prompt)

	for _, kr := range keywordReplies {
		for _, kw := range kr.keywords {
			if strings.Contains(p, kw) {
				return kr.reply
			}
		}
	}

	// 從最新的問答開始找
	for i := len(history) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(history[i].Prompt), p) {
			return recallPrefix + history[i].Reply
		}
	}

	return pick(c.picker, fallbackReplies)
}
