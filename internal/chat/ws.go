package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	SessionID string `json:"session_id"` // empty for new sessions
	Content   string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type  string `json:"type"` // "response" or "error"
	Reply *Reply `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

func handleWebSocket(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[chat] websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		// The request context carries the server's per-request timeout, which
		// would cancel every turn once the connection outlives it. Turns get a
		// detached context instead; the engine bounds its own external calls.
		turnCtx := context.WithoutCancel(r.Context())

		// The session sticks to the connection once assigned, so clients can
		// send an empty session_id on every frame.
		sessionID := ""
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[chat] websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWS(conn, wsResponse{Type: "error", Error: "invalid message format"})
				continue
			}
			if req.Content == "" {
				sendWS(conn, wsResponse{Type: "error", Error: "content is required"})
				continue
			}
			if req.SessionID != "" {
				sessionID = req.SessionID
			}

			reply := engine.Respond(turnCtx, sessionID, req.Content)
			sessionID = reply.SessionID
			sendWS(conn, wsResponse{Type: "response", Reply: &reply})
		}
	}
}

func sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("[chat] websocket write: %v", err)
	}
}
