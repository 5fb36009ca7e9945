// internal/handlers/http/health_handler.go
// Handler untuk health & readiness check

package http

import (
	"encoding/json"
	"net/http"

	"dca-oilgas/internal/dataset"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status": "ok",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ReadyHandler 503 sampai snapshot dataset pertama termuat.
func ReadyHandler(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := store.Status()
		if !st.Loaded {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "loading", "dataset": st})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "dataset": st})
	}
}
