package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the chat API routes.
func RegisterRoutes(r chi.Router, engine *Engine) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", handleChat(engine))
		r.Get("/ws", handleWebSocket(engine))
		r.Get("/sessions/{id}/messages", handleSessionMessages(engine))
	})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func handleChat(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}

		reply := engine.Respond(r.Context(), req.SessionID, req.Message)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply)
	}
}

func handleSessionMessages(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine.transcripts == nil {
			http.Error(w, `{"error":"chat history is not enabled"}`, http.StatusNotFound)
			return
		}

		messages, err := engine.transcripts.Messages(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if messages == nil {
			messages = []StoredMessage{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messages)
	}
}
