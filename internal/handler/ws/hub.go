package ws

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	dialogueservice "github.com/neo-arclight/roundtable/internal/service/dialogue"
)

// Hub 把编排器的每次状态变化以快照帧推给已连接的展示层。
type Hub struct {
	snapshot func(context.Context) dialogueservice.Snapshot
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub 创建推送中心。snapshot 用于给新连接补发当前状态。
func NewHub(snapshot func(context.Context) dialogueservice.Snapshot) *Hub {
	return &Hub{
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// RegisterRoutes 注册WebSocket路由。
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWS)
}

// Broadcast 把快照推给所有连接，写失败的连接直接摘除。
func (h *Hub) Broadcast(snap dialogueservice.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(snap); err != nil {
			log.Printf("[ws] dropping connection: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	// 新连接先补发当前状态，避免等到下一次变化才看到画面。
	if err := conn.WriteJSON(h.snapshot(r.Context())); err != nil {
		conn.Close()
		delete(h.conns, conn)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	go h.readLoop(conn)
}

// readLoop 丢弃入站帧，只用读取错误感知连接关闭。
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
