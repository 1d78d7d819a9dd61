package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/neo-arclight/roundtable/internal/model/chat"
	"github.com/neo-arclight/roundtable/internal/model/relation"
)

// Client 调用外部文本生成服务，为单个居民取回完整的回复文本。
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a generation client against the given endpoint URL.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Context 随请求携带的用户画像。
type Context struct {
	UserTendency  relation.Tendency `json:"userTendency"`
	Relationships relation.Map      `json:"relationships"`
}

type generateRequest struct {
	Message             string              `json:"message"`
	Character           string              `json:"character"`
	ConversationHistory []chat.HistoryEntry `json:"conversationHistory"`
	Context             Context             `json:"context"`
}

// Generate 为指定居民发起一次生成调用，流完全读尽后返回累计文本。
// 网络错误、非2xx状态或读流失败都视为整体失败，不返回半截文本。
func (c *Client) Generate(ctx context.Context, personaID, userMessage string, history []chat.HistoryEntry, profile Context) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Message:             userMessage,
		Character:           personaID,
		ConversationHistory: history,
		Context:             profile,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	text, err := DecodeStream(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode generation stream: %w", err)
	}
	return text, nil
}
