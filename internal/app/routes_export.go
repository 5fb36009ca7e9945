// internal/app/routes_export.go
package app

import (
	"github.com/go-chi/chi/v5"

	hh "dca-oilgas/internal/handlers/http"
	"dca-oilgas/internal/middleware"
)

// NewExportRouter sub-router chi untuk /export; path tidak di-strip oleh mux.
func NewExportRouter(a *hh.API, apiKey string) chi.Router {
	r := chi.NewRouter()
	r.Route("/export", func(cr chi.Router) {
		cr.Use(middleware.APIKey(apiKey))
		cr.Get("/forecast.csv", a.ExportForecastCSV)
		cr.Post("/forecast.csv", a.ExportForecastCSV)
	})
	return r
}
