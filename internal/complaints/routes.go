package complaints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the complaint API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/complaints", func(r chi.Router) {
		r.Post("/", handleCreate(store))
		r.Get("/by-phone/{mobile}", handleFindByPhone(store))
		r.Get("/{id}", handleGet(store))
		r.Get("/{id}/history", handleHistory(store))
		r.Put("/{id}/status", handleUpdateStatus(store))
		r.Post("/{id}/advance", handleAdvance(store))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/complaints", handleList(store))
		r.Put("/complaints/{id}/status", handleUpdateStatus(store))
		r.Delete("/complaints/{id}", handleDelete(store))
		r.Get("/stats", handleStats(store))
	})
}

type createRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Details  string `json:"complaint_details"`
	Category string `json:"category"`
}

func handleCreate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Mobile == "" || req.Details == "" {
			http.Error(w, `{"error":"name, mobile and complaint_details are required"}`, http.StatusBadRequest)
			return
		}
		category := Category(req.Category)
		if req.Category != "" && !validCategory(category) {
			http.Error(w, `{"error":"unknown category"}`, http.StatusBadRequest)
			return
		}

		c, err := store.Create(r.Context(), req.Name, req.Mobile, req.Details, category)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(c)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(c)
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := Status(r.URL.Query().Get("status"))
		list, err := store.ListAll(r.Context(), status)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		if list == nil {
			list = []Complaint{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

func handleFindByPhone(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.FindByPhone(r.Context(), chi.URLParam(r, "mobile"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []Complaint{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

func handleHistory(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := store.History(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(history)
	}
}

type updateStatusRequest struct {
	Status Status `json:"status"`
	Notes  string `json:"notes"`
}

func handleUpdateStatus(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if !req.Status.Valid() {
			http.Error(w, `{"error":"unknown status"}`, http.StatusBadRequest)
			return
		}

		c, err := store.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.Notes)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(c)
	}
}

type advanceRequest struct {
	Notes string `json:"notes"`
}

func handleAdvance(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req advanceRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
		}

		c, err := store.Advance(r.Context(), chi.URLParam(r, "id"), req.Notes)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeStoreError(w, err)
				return
			}
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Complaint *Complaint `json:"complaint"`
			Message   string     `json:"message"`
		}{c, "Your complaint " + c.ComplaintID + " " + c.Status.Narrative() + "."})
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleStats(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := store.Stats(r.Context())
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, `{"error":"complaint not found"}`, http.StatusNotFound)
		return
	}
	http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
}

func validCategory(c Category) bool {
	switch c {
	case CategoryHardware, CategorySoftware, CategoryNetwork,
		CategoryAccount, CategoryBilling, CategoryService, CategoryOther:
		return true
	}
	return false
}
