// internal/handlers/http/respond.go
package http

import (
	"encoding/json"
	"net/http"

	"dca-oilgas/internal/util"
)

// writeJSON meng-encode dulu baru menulis status; gagal encode = 500, bukan 200 kosong.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		util.LogJSON(util.LogEntry{Level: "error", Event: "http.error", Error: "encode response: " + err.Error()})
		status = http.StatusInternalServerError
		b, _ = json.Marshal(util.Internal("failed to encode response"))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

// writeError memetakan error (dca/AppError) ke status + body {"error","message"}.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ae := util.FromError(err)
	if ae.Code == "internal" {
		util.LogJSON(util.LogEntry{Level: "error", Event: "http.error", RequestID: r.Header.Get("X-Request-ID"),
			Fields: map[string]any{"path": r.URL.Path}, Error: err.Error()})
	}
	writeJSON(w, ae.Status(), ae)
}
