package dialogue

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	dialogueservice "github.com/neo-arclight/roundtable/internal/service/dialogue"
	"github.com/neo-arclight/roundtable/pkg/utils"
)

// Handler 暴露展示层读写编排器的HTTP接口。
type Handler struct {
	orchestrator *dialogueservice.Orchestrator
}

// New 创建对话处理器。
func New(orchestrator *dialogueservice.Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// RegisterRoutes 注册对话相关的路由。
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/turns", h.handleSubmitTurn)
	r.Get("/state", h.handleState)
	r.Get("/topics", h.handleTopics)
}

// handleSubmitTurn 提交用户消息。回合进行中的提交被丢弃并返回409，
// 展示层据此禁用输入而不是排队重试。
func (h *Handler) handleSubmitTurn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.orchestrator.Submit(r.Context(), payload.Message); err != nil {
		switch {
		case errors.Is(err, dialogueservice.ErrEmptyMessage):
			utils.RespondError(w, http.StatusBadRequest, "message is required")
		case errors.Is(err, dialogueservice.ErrTurnInProgress):
			utils.RespondError(w, http.StatusConflict, "a turn is already in progress")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, h.orchestrator.Snapshot(r.Context()))
}

// handleState 返回当前快照。
func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.orchestrator.Snapshot(r.Context()))
}

// handleTopics 返回快捷话题。
func (h *Handler) handleTopics(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"topics": dialogueservice.QuickTopics(),
	})
}
