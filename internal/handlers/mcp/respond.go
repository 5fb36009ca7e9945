// internal/handlers/mcp/respond.go
package mcp

import (
	"encoding/json"
	"net/http"

	"dca-oilgas/internal/util"
)

func writeTool(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeToolError(w, util.Internal("encode tool result: "+err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(append(b, '\n'))
}

func writeToolError(w http.ResponseWriter, err error) {
	ae := util.FromError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ae.Status())
	_ = json.NewEncoder(w).Encode(ae)
}

// decodeBody: body kosong = nilai default.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return util.BadInput("invalid json: " + err.Error())
	}
	return nil
}
