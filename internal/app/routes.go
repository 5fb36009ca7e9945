// internal/app/routes.go
package app

import (
	"net/http"

	"github.com/gorilla/mux"

	hh "dca-oilgas/internal/handlers/http"
	"dca-oilgas/internal/mcp"
	"dca-oilgas/internal/middleware"
)

type Deps struct {
	API    *hh.API
	MCP    *mcp.Router
	APIKey string // kosong = /api & /export tanpa proteksi
}

// RegisterRoutes memasang semua route HTTP (API, admin, MCP, export).
func RegisterRoutes(r *mux.Router, d Deps) {
	a := d.API
	r.Use(middleware.RequestID, middleware.CORS, middleware.HTTPMetrics(a.Metrics))

	// --- no prefix ---
	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", hh.ReadyHandler(a.Store)).Methods(http.MethodGet)
	r.Handle("/metrics", hh.MetricsHandler(a.Metrics)).Methods(http.MethodGet)
	r.HandleFunc("/login", hh.LoginHandler(a.Auth)).Methods(http.MethodPost)
	r.Handle("/debug/status", a.Auth.Basic(http.HandlerFunc(a.DebugStatusHandler))).Methods(http.MethodGet)

	// --- /api prefix ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.APIKey(d.APIKey))
	api.HandleFunc("/wells/options", a.WellOptions).Methods(http.MethodGet)
	api.HandleFunc("/production", a.Production).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/forecast", a.Forecast).Methods(http.MethodPost)
	api.HandleFunc("/forecast/summary", a.ForecastSummary).Methods(http.MethodPost)

	// MCP
	mcpR := r.PathPrefix("/mcp").Subrouter()
	mcpR.Use(middleware.APIKey(d.APIKey))
	mcpR.Handle("/route", d.MCP).Methods(http.MethodPost)
	mcpR.HandleFunc("/tools", mcp.ToolsHandler).Methods(http.MethodGet)

	// Download CSV lewat sub-router chi
	r.PathPrefix("/export").Handler(NewExportRouter(a, d.APIKey))

	// Admin (JWT protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(a.Auth.JWT)
	admin.HandleFunc("/dataset", a.AdminDatasetStatus).Methods(http.MethodGet)
	admin.HandleFunc("/dataset", a.AdminUploadDataset).Methods(http.MethodPost)

	// Preflight catch-all
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(hh.PreflightHandler)
}
