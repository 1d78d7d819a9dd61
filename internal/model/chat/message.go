package chat

import "time"

// Role 区分消息的发送方。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 表示对话记录中的一条消息。追加后不可变。
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	PersonaID string    `json:"personaId,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryEntry 是发往生成服务的会话历史条目。
type HistoryEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History 将最近的消息裁剪为生成请求可用的历史窗口。
func History(messages []Message, limit int) []HistoryEntry {
	if limit <= 0 || len(messages) == 0 {
		return nil
	}

	start := 0
	if len(messages) > limit {
		start = len(messages) - limit
	}

	entries := make([]HistoryEntry, 0, len(messages)-start)
	for _, msg := range messages[start:] {
		entries = append(entries, HistoryEntry{Role: msg.Role, Content: msg.Content})
	}
	return entries
}
