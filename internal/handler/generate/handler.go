package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/neo-arclight/roundtable/internal/model/chat"
	"github.com/neo-arclight/roundtable/internal/model/persona"
	"github.com/neo-arclight/roundtable/internal/model/relation"
	"github.com/neo-arclight/roundtable/pkg/utils"
)

// Replier 抽象生成端点背后的大模型服务。
type Replier interface {
	StreamingEnabled() bool
	GenerateReply(ctx context.Context, p persona.Persona, history []chat.HistoryEntry, userMessage string, tendency *relation.Tendency) (*schema.Message, error)
	StreamReply(ctx context.Context, p persona.Persona, history []chat.HistoryEntry, userMessage string, tendency *relation.Tendency) (*schema.StreamReader[*schema.Message], error)
}

// Handler 暴露生成端点：按行回写 "0:" 前缀的文本增量记录。
type Handler struct {
	ai       Replier
	personas persona.Store
}

// New 创建生成端点处理器。ai 为 nil 时端点返回 503。
func New(ai Replier, personas persona.Store) *Handler {
	return &Handler{ai: ai, personas: personas}
}

// RegisterRoutes 注册生成相关的路由。
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleGenerate)
}

type generateRequest struct {
	Message             string              `json:"message"`
	Character           string              `json:"character"`
	ConversationHistory []chat.HistoryEntry `json:"conversationHistory"`
	Context             *requestContext     `json:"context"`
}

type requestContext struct {
	UserTendency  *relation.Tendency `json:"userTendency"`
	Relationships relation.Map       `json:"relationships"`
}

type deltaPayload struct {
	Content string `json:"content"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	p, ok := h.personas.FindByID(req.Character)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "invalid character")
		return
	}

	if h.ai == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "generation unavailable")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	var tendency *relation.Tendency
	if req.Context != nil {
		tendency = req.Context.UserTendency
	}

	if h.ai.StreamingEnabled() {
		h.streamReply(r.Context(), w, flusher, p, req, tendency)
		return
	}

	response, err := h.ai.GenerateReply(r.Context(), p, req.ConversationHistory, req.Message, tendency)
	if err != nil {
		log.Printf("[generate] generation failed for persona=%s: %v", p.ID, err)
		utils.RespondError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	setStreamHeaders(w)
	writeDelta(w, flusher, response.Content)
	writeFinish(w, flusher)
}

func (h *Handler) streamReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, p persona.Persona, req generateRequest, tendency *relation.Tendency) {
	stream, err := h.ai.StreamReply(ctx, p, req.ConversationHistory, req.Message, tendency)
	if err != nil {
		log.Printf("[generate] failed to open stream for persona=%s: %v", p.ID, err)
		utils.RespondError(w, http.StatusInternalServerError, "generation failed")
		return
	}
	defer stream.Close()

	setStreamHeaders(w)

	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			// 头已发出，只能截断回包；客户端会拿到已写出的增量。
			log.Printf("[generate] stream aborted for persona=%s: %v", p.ID, recvErr)
			return
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		writeDelta(w, flusher, chunk.Content)
	}

	writeFinish(w, flusher)
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
}

// writeDelta 回写一条 "0:" 文本增量记录。
func writeDelta(w http.ResponseWriter, flusher http.Flusher, content string) {
	data, err := json.Marshal(deltaPayload{Content: content})
	if err != nil {
		log.Printf("[generate] failed to marshal delta: %v", err)
		return
	}

	fmt.Fprintf(w, "0:%s\n", data)
	flusher.Flush()
}

// writeFinish 回写结束元数据记录，解码器会忽略该前缀。
func writeFinish(w http.ResponseWriter, flusher http.Flusher) {
	fmt.Fprint(w, "d:{\"finishReason\":\"stop\"}\n")
	flusher.Flush()
}
