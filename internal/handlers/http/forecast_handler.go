// internal/handlers/http/forecast_handler.go
// Endpoint DCA: opsi selector, histori produksi, forecast, ringkasan.

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dca-oilgas/internal/dataset"
	"dca-oilgas/internal/middleware"
	"dca-oilgas/internal/observability"
	"dca-oilgas/internal/services"
	"dca-oilgas/internal/util"
)

// API menampung dependency handler HTTP.
type API struct {
	Svc      *services.ForecastService
	Store    *dataset.Store
	Metrics  *observability.Metrics
	Auth     middleware.AdminAuth
	Encoding string // default encoding upload CSV
	Timeout  time.Duration
}

func (a *API) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	t := a.Timeout
	if t <= 0 {
		t = 10 * time.Second
	}
	return context.WithTimeout(r.Context(), t)
}

// WellOptions GET /api/wells/options?field=&reservoir=&well=
func (a *API) WellOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.ctx(r)
	defer cancel()
	out, err := a.Svc.Options(ctx, selectionFromQuery(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Production GET|POST /api/production
func (a *API) Production(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := services.HistoryRequest{SelectionRequest: selectionFromQuery(q), Start: q.Get("start"), End: q.Get("end")}
	if r.Method == http.MethodPost && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, r, util.BadInput("invalid json: "+err.Error()))
			return
		}
	}

	ctx, cancel := a.ctx(r)
	defer cancel()
	out, err := a.Svc.History(ctx, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Forecast POST /api/forecast
func (a *API) Forecast(w http.ResponseWriter, r *http.Request) {
	in, err := decodeForecast(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx, cancel := a.ctx(r)
	defer cancel()
	out, err := a.Svc.Forecast(ctx, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ForecastSummary POST /api/forecast/summary
func (a *API) ForecastSummary(w http.ResponseWriter, r *http.Request) {
	in, err := decodeForecast(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// LLM butuh waktu lebih lama dari pipeline
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	out, err := a.Svc.Summarize(ctx, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
