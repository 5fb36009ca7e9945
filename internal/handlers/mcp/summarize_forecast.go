// internal/handlers/mcp/summarize_forecast.go
// MCP Tool: summarize_forecast - ringkasan naratif (LLM / template)

package mcp

import (
	"context"
	"net/http"
	"time"

	"dca-oilgas/internal/services"
)

func SummarizeForecastHandler(w http.ResponseWriter, r *http.Request) {
	if !requireForecast(w) {
		return
	}
	var in services.ForecastRequest
	if err := decodeBody(r, &in); err != nil {
		writeToolError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	out, err := forecastSvc.Summarize(ctx, in)
	if err != nil {
		writeToolError(w, err)
		return
	}
	// tabel lengkap tidak perlu untuk ringkasan
	writeTool(w, map[string]any{
		"text":       out.Text,
		"source":     out.Source,
		"model":      out.Model,
		"parameters": out.Forecast.Parameters,
		"warnings":   out.Forecast.Warnings,
	})
}
