package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neo-arclight/roundtable/internal/model/chat"
)

var ErrEmptyContent = errors.New("message content is required")

// Service 维护单个会话的完整对话记录。会话期内只追加、不修改，
// 追加顺序即展示顺序。
type Service struct {
	mu       sync.RWMutex
	messages []chat.Message
}

// NewService bootstraps the in-memory transcript.
func NewService() *Service {
	return &Service{messages: make([]chat.Message, 0, 16)}
}

// Append 追加一条消息并补全ID与时间戳，返回落账后的消息。
func (s *Service) Append(_ context.Context, message chat.Message) (chat.Message, error) {
	if message.Content == "" {
		return chat.Message{}, ErrEmptyContent
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()

	return message, nil
}

// Messages returns a copy of the transcript in append order.
func (s *Service) Messages(_ context.Context) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Len returns the number of recorded messages.
func (s *Service) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
