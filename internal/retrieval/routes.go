package retrieval

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fixdesk/fixdesk/internal/complaints"
)

// RegisterRoutes mounts the retrieval API routes.
func RegisterRoutes(r chi.Router, retriever *Retriever, store *complaints.Store) {
	r.Get("/api/guidance", handleGuidance(retriever))
	r.Get("/api/similar", handleSimilar(retriever, store))
}

type guidanceResponse struct {
	Response string  `json:"response"`
	Matches  []Match `json:"matches"`
}

func handleGuidance(retriever *Retriever) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("details")
		if query == "" {
			http.Error(w, `{"error":"details is required"}`, http.StatusBadRequest)
			return
		}
		topK, _ := strconv.Atoi(r.URL.Query().Get("top_k"))

		matches := retriever.Search(r.Context(), query, topK)
		resp := guidanceResponse{Response: DefaultGuidance, Matches: matches}
		if len(matches) > 0 {
			resp.Response = matches[0].Entry.Response
		}
		if resp.Matches == nil {
			resp.Matches = []Match{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func handleSimilar(retriever *Retriever, store *complaints.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details := r.URL.Query().Get("details")
		if details == "" {
			http.Error(w, `{"error":"details is required"}`, http.StatusBadRequest)
			return
		}

		candidates, err := store.ListAll(r.Context(), "")
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		similar := retriever.SimilarComplaints(r.Context(), details, candidates)
		if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(similar) {
			similar = similar[:limit]
		}
		if similar == nil {
			similar = []SimilarComplaint{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(similar)
	}
}
