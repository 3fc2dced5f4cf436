package assistant

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gofoody-ai/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Exchange 一次問答
type Exchange struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Reply     string    `json:"risposta"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationStore 每位使用者最近的問答，Recent 依時間由舊到新回傳
type ConversationStore interface {
	Recent(ctx context.Context, userID int64, limit int) ([]Exchange, error)
	Append(ctx context.Context, userID int64, ex Exchange) error
}

// MemoryConversations 行程內的對話記憶，每位使用者最多保留 size 筆
type MemoryConversations struct {
	mu    sync.Mutex
	size  int
	users map[int64][]Exchange
}

// NewMemoryConversations 建立行程內對話記憶
func NewMemoryConversations(size int) *MemoryConversations {
	return &MemoryConversations{size: size, users: map[int64][]Exchange{}}
}

// Recent 最近 limit 筆
func (m *MemoryConversations) Recent(ctx context.Context, userID int64, limit int) ([]Exchange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.users[userID]
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	return append([]Exchange(nil), list...), nil
}

// Append 新增一筆，超過上限時丟棄最舊的
func (m *MemoryConversations) Append(ctx context.Context, userID int64, ex Exchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := append(m.users[userID], ex)
	if len(list) > m.size {
		list = list[len(list)-m.size:]
	}
	m.users[userID] = list
	return nil
}

// RedisConversations 以 Redis list 保存對話（LPUSH + LTRIM，最新在前）
type RedisConversations struct {
	client *redis.Client
	prefix string
	size   int
}

// NewRedisConversations 建立 Redis 對話記憶
func NewRedisConversations(client *redis.Client, prefix string, size int) *RedisConversations {
	return &RedisConversations{client: client, prefix: prefix, size: size}
}

func (r *RedisConversations) key(userID int64) string {
	return r.prefix + "chat:" + strconv.FormatInt(userID, 10)
}

// Recent 最近 limit 筆，依時間由舊到新
func (r *RedisConversations) Recent(ctx context.Context, userID int64, limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = r.size
	}
	raw, err := r.client.LRange(ctx, r.key(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}

	out := make([]Exchange, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var ex Exchange
		if err := common.ParseJSON(raw[i], &ex); err != nil {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

// Append 新增一筆並修剪到上限
func (r *RedisConversations) Append(ctx context.Context, userID int64, ex Exchange) error {
	data, err := common.ToJSON(ex)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange: %w", err)
	}

	key := r.key(userID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(r.size-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save exchange: %w", err)
	}
	return nil
}
