package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/neo-arclight/roundtable/internal/config"
	"github.com/neo-arclight/roundtable/internal/model/chat"
	"github.com/neo-arclight/roundtable/internal/model/persona"
	"github.com/neo-arclight/roundtable/internal/model/relation"
)

// Service 封装生成端点背后的大模型调用。
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the AI service backed by the configured chat model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{cfg: cfg, chain: runnable}, nil
}

// StreamingEnabled 指示生成端点是否以流式分片回包。
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// GenerateReply produces a complete reply for the persona in one call.
func (s *Service) GenerateReply(ctx context.Context, p persona.Persona, history []chat.HistoryEntry, userMessage string, tendency *relation.Tendency) (*schema.Message, error) {
	response, err := s.chain.Invoke(ctx, s.buildChainInput(p, history, userMessage, tendency))
	if err != nil {
		return nil, fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated reply for persona=%s, length=%d", p.ID, len(response.Content))
	return response, nil
}

// StreamReply streams reply chunks via the configured chain.
func (s *Service) StreamReply(ctx context.Context, p persona.Persona, history []chat.HistoryEntry, userMessage string, tendency *relation.Tendency) (*schema.StreamReader[*schema.Message], error) {
	stream, err := s.chain.Stream(ctx, s.buildChainInput(p, history, userMessage, tendency))
	if err != nil {
		return nil, fmt.Errorf("failed to stream AI chain output: %w", err)
	}
	return stream, nil
}

func (s *Service) buildChainInput(p persona.Persona, history []chat.HistoryEntry, userMessage string, tendency *relation.Tendency) map[string]any {
	return map[string]any{
		"system":  BuildSystemPrompt(p, tendency),
		"history": buildHistoryMessages(history),
		"query":   userMessage,
	}
}

func buildHistoryMessages(history []chat.HistoryEntry) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history))
	for _, entry := range history {
		switch entry.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(entry.Content))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(entry.Content, nil))
		}
	}
	return messages
}
