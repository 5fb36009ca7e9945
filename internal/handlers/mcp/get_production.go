// internal/handlers/mcp/get_production.go
// MCP Tool: get_production - ambil data produksi bulanan langsung dari tabel prod_monthly

package mcp

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dca-oilgas/internal/dataset"
	mysqlrepo "dca-oilgas/internal/repositories/mysql"
	"dca-oilgas/internal/util"
)

// inject dari app
var productionRepo *mysqlrepo.ProductionRepo

func SetProductionRepo(r *mysqlrepo.ProductionRepo) {
	productionRepo = r
	readyProduction = r != nil
}

type ProductionRow struct {
	Field     string  `json:"field"`
	Reservoir string  `json:"reservoir"`
	Well      string  `json:"well"`
	Fluid     string  `json:"fluid"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Rate      float64 `json:"rate"`
}

type prodReq struct {
	Field     string `json:"field,omitempty"`
	Reservoir string `json:"reservoir,omitempty"`
	Well      string `json:"well,omitempty"`
	Fluid     string `json:"fluid,omitempty"`
	Start     string `json:"start,omitempty"` // "2020-01-01"
	End       string `json:"end,omitempty"`   // inclusive
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

func GetProductionHandler(w http.ResponseWriter, r *http.Request) {
	if productionRepo == nil {
		writeToolError(w, util.Unavailable("production repo not configured"))
		return
	}

	q := r.URL.Query()
	in := prodReq{
		Field:     strings.TrimSpace(q.Get("field")),
		Reservoir: strings.TrimSpace(q.Get("reservoir")),
		Well:      strings.TrimSpace(q.Get("well")),
		Fluid:     strings.TrimSpace(q.Get("fluid")),
		Start:     strings.TrimSpace(q.Get("start")),
		End:       strings.TrimSpace(q.Get("end")),
	}
	if v := q.Get("limit"); v != "" {
		if n, _ := strconv.Atoi(v); n > 0 {
			in.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, _ := strconv.Atoi(v); n >= 0 {
			in.Offset = n
		}
	}

	if r.Method == http.MethodPost && in == (prodReq{}) {
		if err := decodeBody(r, &in); err != nil {
			writeToolError(w, err)
			return
		}
	}
	if in.Limit <= 0 || in.Limit > 5000 {
		in.Limit = 1000
	}

	f := mysqlrepo.ProdFilter{
		Field:     in.Field,
		Reservoir: in.Reservoir,
		Well:      in.Well,
		Fluid:     in.Fluid,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	for _, p := range []struct {
		name string
		raw  string
		dst  **time.Time
	}{{"start", in.Start, &f.Start}, {"end", in.End, &f.End}} {
		if p.raw == "" {
			continue
		}
		t, err := dataset.ParseDate(p.raw)
		if err != nil {
			writeToolError(w, util.BadInput(p.name+": "+err.Error()))
			return
		}
		*p.dst = &t
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	rows, err := productionRepo.ListRecords(ctx, f)
	if err != nil {
		writeToolError(w, util.Internal(err.Error()))
		return
	}

	out := make([]ProductionRow, 0, len(rows))
	for _, rr := range rows {
		out = append(out, ProductionRow{
			Field:     rr.Field,
			Reservoir: rr.Reservoir,
			Well:      rr.Well,
			Fluid:     rr.Fluid,
			Date:      rr.Date.Format("2006-01-02"),
			Rate:      rr.Rate,
		})
	}
	writeTool(w, out)
}
