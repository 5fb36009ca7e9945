// internal/handlers/mcp/list_well_options.go
// MCP Tool: list_well_options - kandidat field/reservoir/well/fluid bertingkat

package mcp

import (
	"net/http"

	"dca-oilgas/internal/services"
)

func ListWellOptionsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireForecast(w) {
		return
	}
	var in services.SelectionRequest
	if err := decodeBody(r, &in); err != nil {
		writeToolError(w, err)
		return
	}
	out, err := forecastSvc.Options(r.Context(), in)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeTool(w, out)
}
