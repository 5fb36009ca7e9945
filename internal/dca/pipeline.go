// internal/dca/pipeline.go
// Pipeline eksplisit: filter -> window -> estimate -> project -> assemble.

package dca

import (
	"errors"
	"fmt"
	"time"
)

// Config konfigurasi immutable satu eksekusi pipeline.
type Config struct {
	Selection Selection         `json:"selection"`
	Start     time.Time         `json:"start"` // zero = awal seri
	End       time.Time         `json:"end"`   // zero = akhir seri
	Params    DeclineParameters `json:"params"`
	ZeroRate  ZeroRatePolicy    `json:"zero_rate"`
}

// Result is everything one pipeline invocation produced. It owns its table;
// a parameter change means a new Run, never an update.
type Result struct {
	Selection  Selection          `json:"selection"`
	Window     AnalysisWindow     `json:"window"`
	History    WellSeries         `json:"-"`
	Estimate   Estimate           `json:"estimate"`
	Estimated  bool               `json:"estimated"` // false kalau D tidak bisa diestimasi
	Parameters ResolvedParameters `json:"parameters"`
	Warnings   []Warning          `json:"warnings"`
	Table      ProjectionTable    `json:"-"`
}

// Run executes the full pipeline over an in-memory dataset. The D estimate is
// always attempted as the default; an undetermined estimate only fails the run
// when the caller did not supply D.
func Run(dataset []ProductionRecord, cfg Config) (Result, error) {
	series, err := Filter(dataset, cfg.Selection)
	if err != nil {
		return Result{}, err
	}
	history, window, _, err := ApplyWindow(series, cfg.Start, cfg.End)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Selection: cfg.Selection,
		Window:    window,
		History:   history,
		Warnings:  history.Warnings(),
	}

	est, estErr := EstimateD(history, cfg.ZeroRate)
	res.Estimate = est
	res.Warnings = append(res.Warnings, est.Warnings...)
	switch {
	case estErr == nil:
		res.Estimated = true
	case errors.Is(estErr, ErrUndeterminedDecline) && cfg.Params.D != nil:
		// D manual menggantikan estimasi
	default:
		return res, estErr
	}

	params, err := ResolveParameters(cfg.Params, history, est, res.Estimated)
	if err != nil {
		return res, err
	}
	res.Parameters = params

	table, err := Project(params, history)
	if err != nil {
		return res, err
	}
	res.Table = table
	return res, nil
}

// ResolveParameters applies defaults: qi = first windowed rate, D = estimate,
// b = DefaultB, horizon = DefaultHorizonMonths. Overrides always win.
func ResolveParameters(in DeclineParameters, history WellSeries, est Estimate, estimated bool) (ResolvedParameters, error) {
	out := ResolvedParameters{
		B:             DefaultB,
		HorizonMonths: DefaultHorizonMonths,
		QiSource:      "default",
		DSource:       "estimated",
		BSource:       "default",
	}

	switch {
	case in.Qi != nil:
		out.Qi, out.QiSource = *in.Qi, "override"
	case history.Len() > 0:
		out.Qi = history.obs[0].Rate
	default:
		return out, fmt.Errorf("%w: qi has no default without history", ErrInvalidParameter)
	}

	switch {
	case in.D != nil:
		out.D, out.DSource = *in.D, "override"
	case estimated:
		out.D = est.D
	default:
		return out, ErrUndeterminedDecline
	}

	if in.B != nil {
		out.B, out.BSource = *in.B, "override"
	}
	if out.B < 0 || out.B > 1 {
		return out, fmt.Errorf("%w: b must be within [0, 1], got %v", ErrInvalidParameter, out.B)
	}

	if in.HorizonMonths != nil {
		out.HorizonMonths = *in.HorizonMonths
	}
	if out.HorizonMonths < 0 {
		return out, fmt.Errorf("%w: horizon_months must be >= 0, got %d", ErrInvalidParameter, out.HorizonMonths)
	}
	maxH := in.MaxHorizonMonths
	if maxH <= 0 {
		maxH = DefaultMaxHorizonMonths
	}
	maxH = min(maxH, HorizonCeilingMonths)
	if out.HorizonMonths > maxH {
		return out, fmt.Errorf("%w: horizon_months must be <= %d, got %d", ErrInvalidParameter, maxH, out.HorizonMonths)
	}
	return out, nil
}
