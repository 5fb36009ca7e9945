// internal/handlers/http/admin_handler.go
package http

import (
	"net/http"
	"path/filepath"

	"dca-oilgas/internal/dataset"
	"dca-oilgas/internal/util"
)

const maxUploadBytes = 64 << 20

// AdminDatasetStatus status snapshot aktif.
func (a *API) AdminDatasetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Store.Status())
}

// AdminUploadDataset: multipart field "file" (CSV), opsional "encoding".
// Snapshot baru menggantikan yang lama hanya jika seluruh file valid.
func (a *API) AdminUploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, util.BadInput("file missing"))
		return
	}
	defer f.Close()

	enc := r.FormValue("encoding")
	if enc == "" {
		enc = a.Encoding
	}
	recs, err := dataset.ReadCSV(f, enc)
	if err != nil {
		writeError(w, r, util.BadInput(err.Error()))
		return
	}
	if len(recs) == 0 {
		writeError(w, r, util.BadInput("csv has no data rows"))
		return
	}

	snap := a.Store.Replace("upload:"+filepath.Base(hdr.Filename), recs)
	util.LogJSON(util.LogEntry{
		Event: "dataset.load", RequestID: r.Header.Get("X-Request-ID"),
		Fields: map[string]any{"source": snap.Source, "snapshot": snap.ID, "records": len(recs)},
	})
	writeJSON(w, http.StatusOK, a.Store.Status())
}
