// internal/handlers/http/export_handler.go
// Download CSV proyeksi (mounted di sub-router chi /export).

package http

import (
	"bytes"
	"net/http"
	"strconv"

	"dca-oilgas/internal/export"
	"dca-oilgas/internal/util"
)

// ExportForecastCSV GET|POST /export/forecast.csv[?compress=snappy]
func (a *API) ExportForecastCSV(w http.ResponseWriter, r *http.Request) {
	in, err := decodeForecast(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	compress := r.URL.Query().Get("compress")
	if compress != "" && compress != "snappy" {
		writeError(w, r, util.BadInput("compress must be snappy or empty"))
		return
	}

	ctx, cancel := a.ctx(r)
	defer cancel()
	f, err := a.Svc.Forecast(ctx, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// buffer dulu agar error tulis tidak menghasilkan CSV setengah jadi
	var buf bytes.Buffer
	name := export.Filename(f.Selection.Well, f.Parameters.HorizonMonths)
	ctype := "text/csv; charset=utf-8"
	if compress == "snappy" {
		err = export.WriteSnappyCSV(&buf, f.Table)
		name += ".sz"
		ctype = "application/x-snappy-framed"
	} else {
		err = export.WriteCSV(&buf, f.Table)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	label := compress
	if label == "" {
		label = "none"
	}
	a.Metrics.ObserveExport(label)

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Snapshot-ID", f.SnapshotID)
	_, _ = w.Write(buf.Bytes())
}
