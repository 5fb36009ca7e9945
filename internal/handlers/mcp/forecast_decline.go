// internal/handlers/mcp/forecast_decline.go
// MCP Tool: forecast_decline - estimasi D + proyeksi exp/hip/arm satu sumur

package mcp

import (
	"context"
	"net/http"
	"time"

	"dca-oilgas/internal/services"
)

func ForecastDeclineHandler(w http.ResponseWriter, r *http.Request) {
	if !requireForecast(w) {
		return
	}
	var in services.ForecastRequest
	if err := decodeBody(r, &in); err != nil {
		writeToolError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	out, err := forecastSvc.Forecast(ctx, in)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeTool(w, out)
}
