// internal/dca/types.go
// Tipe data inti decline-curve analysis (DCA).

// Package dca estimates and projects well production with decline-curve
// analysis. Every function in this package is pure: inputs are never mutated
// and every result is a freshly built value, so calls are safe to run in
// parallel without coordination.
package dca

import "time"

// Default engineering constants.
const (
	DefaultB             = 0.65
	DefaultHorizonMonths = 12
	// Batas horizon: default yang bisa dikonfigurasi, dan plafon keras untuk MonthGrid.
	DefaultMaxHorizonMonths = 1200
	HorizonCeilingMonths    = 12000
)

// ProductionRecord satu baris produksi harian/bulanan untuk satu sumur & fluida.
type ProductionRecord struct {
	Field     string    `json:"field"`
	Reservoir string    `json:"reservoir"`
	Well      string    `json:"well"`
	Fluid     string    `json:"fluid"`
	Date      time.Time `json:"date"`
	Rate      float64   `json:"rate"`
}

// Key identitas seri (field, reservoir, well, fluid).
type Key struct {
	Field     string `json:"field"`
	Reservoir string `json:"reservoir"`
	Well      string `json:"well"`
	Fluid     string `json:"fluid"`
}

func (r ProductionRecord) Key() Key {
	return Key{Field: r.Field, Reservoir: r.Reservoir, Well: r.Well, Fluid: r.Fluid}
}

// Observation adalah record yang sudah masuk window dan diberi indeks t.
type Observation struct {
	T    int       `json:"t"`
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// WellSeries deret waktu satu (field, reservoir, well, fluid), urut tanggal naik.
// Nilai immutable: accessor mengembalikan salinan.
type WellSeries struct {
	key      Key
	obs      []Observation
	warnings []Warning
}

func (s WellSeries) Key() Key { return s.key }

func (s WellSeries) Len() int { return len(s.obs) }

// Observations returns a copy of the series rows with their t index.
func (s WellSeries) Observations() []Observation {
	out := make([]Observation, len(s.obs))
	copy(out, s.obs)
	return out
}

// Rates returns a copy of the rate column.
func (s WellSeries) Rates() []float64 {
	out := make([]float64, len(s.obs))
	for i, o := range s.obs {
		out[i] = o.Rate
	}
	return out
}

// Warnings returns data-quality findings collected while building the series.
func (s WellSeries) Warnings() []Warning {
	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// FirstDate / LastDate; zero time kalau seri kosong.
func (s WellSeries) FirstDate() time.Time {
	if len(s.obs) == 0 {
		return time.Time{}
	}
	return s.obs[0].Date
}

func (s WellSeries) LastDate() time.Time {
	if len(s.obs) == 0 {
		return time.Time{}
	}
	return s.obs[len(s.obs)-1].Date
}

// NewWellSeries builds a series from records that share one key. Records are
// sorted by date (stable) and indexed t = 0..n-1. Duplicate dates are kept and
// reported as warnings.
func NewWellSeries(key Key, records []ProductionRecord) WellSeries {
	rows := make([]ProductionRecord, len(records))
	copy(rows, records)
	sortRecordsByDate(rows)

	obs := make([]Observation, len(rows))
	var warnings []Warning
	for i, r := range rows {
		obs[i] = Observation{T: i, Date: dateOnly(r.Date), Rate: r.Rate}
		if i > 0 && obs[i].Date.Equal(obs[i-1].Date) {
			warnings = append(warnings, Warning{
				Kind:    WarnDuplicateDate,
				Date:    obs[i].Date,
				T:       i,
				Message: "duplicate date in series; both observations kept",
			})
		}
	}
	return WellSeries{key: key, obs: obs, warnings: warnings}
}

// AnalysisWindow rentang historis yang dianalisis; Start selalu tanggal 1.
type AnalysisWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DeclineParameters input proyeksi. Field pointer = opsional (nil -> default).
type DeclineParameters struct {
	Qi            *float64 `json:"qi,omitempty"`
	D             *float64 `json:"d,omitempty"`
	B             *float64 `json:"b,omitempty"`
	HorizonMonths *int     `json:"horizon_months,omitempty"`
	// MaxHorizonMonths batas atas horizon; 0 = DefaultMaxHorizonMonths.
	MaxHorizonMonths int `json:"-"`
}

// ResolvedParameters adalah parameter final setelah default diterapkan.
type ResolvedParameters struct {
	Qi            float64 `json:"qi"`
	D             float64 `json:"d"`
	B             float64 `json:"b"`
	HorizonMonths int     `json:"horizon_months"`
	// Sumber nilai: "estimated"/"default" atau "override".
	QiSource string `json:"qi_source"`
	DSource  string `json:"d_source"`
	BSource  string `json:"b_source"`
}

// ProjectionPoint satu baris tabel proyeksi (per bulan).
type ProjectionPoint struct {
	T      int       `json:"t"`
	Date   time.Time `json:"date"`
	QoExp  float64   `json:"qo_exp"`
	NpExp  float64   `json:"Np_exp"`
	QoHyp  float64   `json:"qo_hip"`
	NpHyp  float64   `json:"Np_hip"`
	QoHarm float64   `json:"qo_arm"`
	NpHarm float64   `json:"Np_arm"`
}

// Columns is the export column order; it is a compatibility contract.
var Columns = []string{"t", "date", "qo_exp", "Np_exp", "qo_hip", "Np_hip", "qo_arm", "Np_arm"}

// ProjectionTable tabel hasil proyeksi, immutable setelah dibangun.
type ProjectionTable struct {
	points []ProjectionPoint
}

func (t ProjectionTable) Len() int { return len(t.points) }

// Points returns a copy of the rows ordered by t.
func (t ProjectionTable) Points() []ProjectionPoint {
	out := make([]ProjectionPoint, len(t.points))
	copy(out, t.points)
	return out
}

// At returns row i; ok=false when out of range.
func (t ProjectionTable) At(i int) (ProjectionPoint, bool) {
	if i < 0 || i >= len(t.points) {
		return ProjectionPoint{}, false
	}
	return t.points[i], true
}

// ModelSeries output satu model decline (rate + kumulatif), sejajar grid.
type ModelSeries struct {
	Model      Model
	Rate       []float64
	Cumulative []float64
}

// Model nama model decline.
type Model string

const (
	ModelExponential Model = "exponential"
	ModelHyperbolic  Model = "hyperbolic"
	ModelHarmonic    Model = "harmonic"
)

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
