package chat

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

func dialTestWS(t *testing.T, env *testEnv, timeout time.Duration) *websocket.Conn {
	t.Helper()
	r := chi.NewRouter()
	r.Use(middleware.Timeout(timeout))
	RegisterRoutes(r, env.engine)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketTurn(t *testing.T) {
	env := setupTestEngine(t)
	conn := dialTestWS(t, env, time.Minute)

	if err := conn.WriteJSON(wsRequest{Content: "hello"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if resp.Type != "response" || resp.Reply == nil {
		t.Fatalf("frame = %+v, want a response frame", resp)
	}
	if resp.Reply.SessionID == "" {
		t.Error("reply should carry a session id")
	}

	if err := conn.WriteJSON(wsRequest{Content: ""}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if resp.Type != "error" || resp.Error != "content is required" {
		t.Errorf("frame = %+v, want a content-required error", resp)
	}
}

func TestWebSocketOutlivesRequestTimeout(t *testing.T) {
	env := setupTestEngine(t)

	created, err := env.store.Create(context.Background(),
		"John Smith", "9876543210", "laptop screen keeps flickering", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	conn := dialTestWS(t, env, 50*time.Millisecond)

	// Let the request deadline pass before the first turn; the store lookup
	// must still succeed.
	time.Sleep(100 * time.Millisecond)

	if err := conn.WriteJSON(wsRequest{Content: created.ComplaintID}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if resp.Type != "response" || resp.Reply == nil {
		t.Fatalf("frame = %+v, want a response frame", resp)
	}
	if !strings.Contains(resp.Reply.Response, created.ComplaintID) {
		t.Errorf("reply %q should report the status of %s", resp.Reply.Response, created.ComplaintID)
	}
}
