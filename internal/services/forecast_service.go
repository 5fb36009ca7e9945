// internal/services/forecast_service.go
// Layanan forecast: jalankan pipeline DCA di atas snapshot dataset aktif.

package services

import (
	"context"
	"strings"
	"time"

	"dca-oilgas/internal/dataset"
	"dca-oilgas/internal/dca"
	"dca-oilgas/internal/mcp/llm"
	"dca-oilgas/internal/observability"
	"dca-oilgas/internal/util"
)

// Snapshots is satisfied by *dataset.Store.
type Snapshots interface {
	Current() (dataset.Snapshot, bool)
}

// Defaults nilai parameter bila request tidak mengisinya (dari config).
type Defaults struct {
	B                float64
	HorizonMonths    int
	MaxHorizonMonths int
	ZeroRate         dca.ZeroRatePolicy
}

func DefaultDefaults() Defaults {
	return Defaults{
		B:                dca.DefaultB,
		HorizonMonths:    dca.DefaultHorizonMonths,
		MaxHorizonMonths: dca.DefaultMaxHorizonMonths,
		ZeroRate:         dca.DefaultZeroRatePolicy(),
	}
}

type ForecastService struct {
	Data     Snapshots
	Defaults Defaults
	Metrics  *observability.Metrics
	LLM      llm.Client // nil = ringkasan template
}

func NewForecastService(data Snapshots, d Defaults, m *observability.Metrics, c llm.Client) *ForecastService {
	return &ForecastService{Data: data, Defaults: d, Metrics: m, LLM: c}
}

// SelectionRequest level kosong diisi kandidat pertama (seperti selectbox).
type SelectionRequest struct {
	Field     string `json:"field,omitempty"`
	Reservoir string `json:"reservoir,omitempty"`
	Well      string `json:"well,omitempty"`
	Fluid     string `json:"fluid,omitempty"`
}

func (r SelectionRequest) Selection() dca.Selection {
	return dca.Selection{
		Field:     strings.TrimSpace(r.Field),
		Reservoir: strings.TrimSpace(r.Reservoir),
		Well:      strings.TrimSpace(r.Well),
		Fluid:     strings.TrimSpace(r.Fluid),
	}
}

type ForecastRequest struct {
	SelectionRequest
	Start            string   `json:"start,omitempty"` // YYYY-MM-DD, kosong = awal seri
	End              string   `json:"end,omitempty"`   // YYYY-MM-DD, kosong = akhir seri
	Qi               *float64 `json:"qi,omitempty"`
	D                *float64 `json:"d,omitempty"`
	B                *float64 `json:"b,omitempty"`
	HorizonMonths    *int     `json:"horizon_months,omitempty"`
	ZeroRateMode     string   `json:"zero_rate_mode,omitempty"` // substitute|exclude
	ZeroRateSentinel *float64 `json:"zero_rate_sentinel,omitempty"`
}

// Forecast is the API view of one pipeline run.
type Forecast struct {
	SnapshotID string `json:"snapshot_id"`
	dca.Result
	Variance []Variance            `json:"variance"`
	Fit      FitStats              `json:"fit"`
	Points   []dca.ProjectionPoint `json:"table"`
}

type HistoryRequest struct {
	SelectionRequest
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type History struct {
	SnapshotID string             `json:"snapshot_id"`
	Selection  dca.Selection      `json:"selection"`
	Window     dca.AnalysisWindow `json:"window"`
	Points     []HistoryPoint     `json:"points"`
	Warnings   []dca.Warning      `json:"warnings"`
}

func (s *ForecastService) snapshot() (dataset.Snapshot, error) {
	snap, ok := s.Data.Current()
	if !ok {
		return dataset.Snapshot{}, util.Unavailable("dataset not loaded")
	}
	return snap, nil
}

// Options daftar kandidat bertingkat field -> reservoir -> well -> fluid.
func (s *ForecastService) Options(ctx context.Context, req SelectionRequest) (dca.SelectionOptions, error) {
	if err := ctx.Err(); err != nil {
		return dca.SelectionOptions{}, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return dca.SelectionOptions{}, err
	}
	return dca.Options(snap.Records, req.Selection()), nil
}

// History returns the windowed series with its t index.
func (s *ForecastService) History(ctx context.Context, req HistoryRequest) (History, error) {
	if err := ctx.Err(); err != nil {
		return History{}, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return History{}, err
	}
	start, end, err := parseWindow(req.Start, req.End)
	if err != nil {
		return History{}, err
	}
	sel := req.Selection().Resolve(snap.Records)
	series, err := dca.Filter(snap.Records, sel)
	if err != nil {
		return History{}, err
	}
	win, window, _, err := dca.ApplyWindow(series, start, end)
	if err != nil {
		return History{}, err
	}
	return History{
		SnapshotID: snap.ID,
		Selection:  sel,
		Window:     window,
		Points:     historyPoints(win),
		Warnings:   nonNil(win.Warnings()),
	}, nil
}

// Forecast menjalankan pipeline lengkap dan melampirkan diagnosa fit.
func (s *ForecastService) Forecast(ctx context.Context, req ForecastRequest) (Forecast, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Forecast{}, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return Forecast{}, err
	}
	cfg, err := s.buildConfig(req, snap.Records)
	if err != nil {
		s.finish(ctx, cfg, start, err)
		return Forecast{}, err
	}

	res, err := dca.Run(snap.Records, cfg)
	if err != nil {
		s.finish(ctx, cfg, start, err)
		return Forecast{}, err
	}
	if req.B == nil {
		res.Parameters.BSource = "default"
	}
	res.Warnings = nonNil(res.Warnings)

	variance, fit := VarianceMonthly(res.History, res.Parameters.Qi, res.Parameters.D)
	out := Forecast{
		SnapshotID: snap.ID,
		Result:     res,
		Variance:   variance,
		Fit:        fit,
		Points:     res.Table.Points(),
	}

	for _, w := range res.Warnings {
		s.Metrics.ObserveWarning(string(w.Kind))
		util.LogJSON(util.LogEntry{
			Level: "warn", Event: "dca.warning", RequestID: util.RequestID(ctx),
			Fields: map[string]any{"well": cfg.Selection.Well, "fluid": cfg.Selection.Fluid, "kind": w.Kind, "t": w.T, "date": w.Date.Format("2006-01-02")},
		})
	}
	if res.Estimated {
		s.Metrics.ObserveEstimate(res.Estimate.D)
	}
	s.finish(ctx, cfg, start, nil, "rows", len(out.Points), "d", res.Parameters.D, "d_source", res.Parameters.DSource)
	return out, nil
}

func (s *ForecastService) buildConfig(req ForecastRequest, records []dca.ProductionRecord) (dca.Config, error) {
	startDate, endDate, err := parseWindow(req.Start, req.End)
	if err != nil {
		return dca.Config{}, err
	}

	params := dca.DeclineParameters{
		Qi: req.Qi, D: req.D, B: req.B, HorizonMonths: req.HorizonMonths,
		MaxHorizonMonths: s.Defaults.MaxHorizonMonths,
	}
	if params.B == nil {
		b := s.Defaults.B
		params.B = &b
	}
	if params.HorizonMonths == nil {
		h := s.Defaults.HorizonMonths
		params.HorizonMonths = &h
	}

	zr := s.Defaults.ZeroRate
	if m := strings.TrimSpace(req.ZeroRateMode); m != "" {
		zr.Mode = dca.ZeroRateMode(strings.ToLower(m))
	}
	if req.ZeroRateSentinel != nil {
		zr.Sentinel = *req.ZeroRateSentinel
	}

	return dca.Config{
		Selection: req.Selection().Resolve(records),
		Start:     startDate,
		End:       endDate,
		Params:    params,
		ZeroRate:  zr,
	}, nil
}

func (s *ForecastService) finish(ctx context.Context, cfg dca.Config, start time.Time, err error, kv ...any) {
	status := "ok"
	entry := util.LogEntry{
		Event:      "dca.pipeline",
		RequestID:  util.RequestID(ctx),
		DurationMS: time.Since(start).Milliseconds(),
		Fields: map[string]any{
			"field": cfg.Selection.Field, "reservoir": cfg.Selection.Reservoir,
			"well": cfg.Selection.Well, "fluid": cfg.Selection.Fluid,
		},
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			entry.Fields[k] = kv[i+1]
		}
	}
	if err != nil {
		ae := util.FromError(err)
		status = ae.Code
		entry.Level = "warn"
		if ae.Code == "internal" {
			entry.Level = "error"
		}
		entry.Error = err.Error()
	}
	s.Metrics.ObservePipeline(status, time.Since(start))
	util.LogJSON(entry)
}

func parseWindow(start, end string) (time.Time, time.Time, error) {
	var s, e time.Time
	var err error
	if v := strings.TrimSpace(start); v != "" {
		if s, err = dataset.ParseDate(v); err != nil {
			return s, e, util.BadInput("start: " + err.Error())
		}
	}
	if v := strings.TrimSpace(end); v != "" {
		if e, err = dataset.ParseDate(v); err != nil {
			return s, e, util.BadInput("end: " + err.Error())
		}
	}
	if !s.IsZero() && !e.IsZero() && e.Before(s) {
		return s, e, util.BadInput("end must not be before start")
	}
	return s, e, nil
}

func nonNil(w []dca.Warning) []dca.Warning {
	if w == nil {
		return []dca.Warning{}
	}
	return w
}
