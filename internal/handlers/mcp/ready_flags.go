// internal/handlers/mcp/ready_flags.go
package mcp

import (
	"net/http"

	"dca-oilgas/internal/services"
	"dca-oilgas/internal/util"
)

// Flag readiness per dependency; diset dari Set*(..) masing-masing.
var (
	readyForecast   bool
	readyProduction bool
)

// inject dari app
var forecastSvc *services.ForecastService

func SetForecastService(s *services.ForecastService) {
	forecastSvc = s
	readyForecast = s != nil
}

// ReadyStatus mengembalikan status siap/tidaknya setiap dependency tool.
func ReadyStatus() map[string]bool {
	return map[string]bool{
		"forecast":   readyForecast,
		"production": readyProduction,
	}
}

func requireForecast(w http.ResponseWriter) bool {
	if forecastSvc == nil {
		writeToolError(w, util.Unavailable("forecast service not configured"))
		return false
	}
	return true
}
