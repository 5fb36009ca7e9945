// internal/handlers/http/metrics_handler.go
// Handler untuk metrics Prometheus

package http

import (
	"net/http"

	"dca-oilgas/internal/observability"
)

func MetricsHandler(m *observability.Metrics) http.Handler {
	return m.Handler()
}
