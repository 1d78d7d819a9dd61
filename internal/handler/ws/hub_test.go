package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/neo-arclight/roundtable/internal/model/relation"
	dialogueservice "github.com/neo-arclight/roundtable/internal/service/dialogue"
)

func testSnapshot() dialogueservice.Snapshot {
	return dialogueservice.Snapshot{
		InProgress:    false,
		Relationships: relation.Seed().Standings(),
	}
}

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	r := chi.NewRouter()
	hub.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestConnectReceivesCurrentSnapshot(t *testing.T) {
	hub := NewHub(func(context.Context) dialogueservice.Snapshot { return testSnapshot() })
	conn := dialHub(t, hub)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap dialogueservice.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if len(snap.Relationships) != 3 {
		t.Fatalf("expected 3 relationship entries, got %d", len(snap.Relationships))
	}
}

func TestBroadcastReachesConnection(t *testing.T) {
	hub := NewHub(func(context.Context) dialogueservice.Snapshot { return testSnapshot() })
	conn := dialHub(t, hub)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap dialogueservice.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}

	pushed := testSnapshot()
	pushed.InProgress = true
	pushed.ActivePersona = "alex"
	hub.Broadcast(pushed)

	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if !snap.InProgress || snap.ActivePersona != "alex" {
		t.Fatalf("unexpected broadcast payload: %+v", snap)
	}
}
