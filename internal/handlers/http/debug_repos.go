// internal/handlers/http/debug_repos.go
package http

import (
	"net/http"

	mcphandlers "dca-oilgas/internal/handlers/mcp"
	"dca-oilgas/internal/mcp"
)

// DebugStatusHandler: status dependency + tool MCP terdaftar.
func (a *API) DebugStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ready":   mcphandlers.ReadyStatus(),
		"dataset": a.Store.Status(),
		"tools":   mcp.List(),
	})
}
