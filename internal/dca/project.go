// internal/dca/project.go
// ProjectionEngine: grid bulanan + tiga model decline (eksponensial, hiperbolik, harmonik).

package dca

import (
	"fmt"
	"math"
	"time"
)

// MonthGrid returns the month-start dates between the first historical date
// and last + horizon months, inclusive. A first date that is not the 1st of a
// month starts the grid on the next month start. Month arithmetic clamps the
// day (31 Jan + 1 month = 28/29 Feb).
func MonthGrid(first, last time.Time, horizonMonths int) ([]time.Time, error) {
	if horizonMonths < 0 || horizonMonths > HorizonCeilingMonths {
		return nil, fmt.Errorf("%w: horizon_months must be within [0, %d], got %d", ErrInvalidParameter, HorizonCeilingMonths, horizonMonths)
	}
	first, last = dateOnly(first), dateOnly(last)
	start := monthStart(first)
	if start.Before(first) {
		start = start.AddDate(0, 1, 0)
	}
	end := addMonths(last, horizonMonths)

	var grid []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 1, 0) {
		grid = append(grid, d)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: no month start between %s and %s", ErrEmptyGrid,
			first.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return grid, nil
}

// Exponential: qo = qi·e^(−D·t), Np = (qi − qo)/D.
func Exponential(qi, d float64, n int) (ModelSeries, error) {
	if d == 0 {
		return ModelSeries{}, &DomainError{Model: ModelExponential, Reason: "D = 0 (cumulative divides by D)"}
	}
	out := newModelSeries(ModelExponential, n)
	for i := 0; i < n; i++ {
		t := float64(i)
		qo := qi * math.Exp(-d*t)
		out.Rate[i] = qo
		out.Cumulative[i] = (qi - qo) / d
	}
	return out, out.checkFinite()
}

// Hyperbolic: qo = qi/(1 + D·b·t)^(1/b),
// Np = qi^b·(qi^(1−b) − qo^(1−b)) / (D·(1−b)).
// b = 1 is the harmonic model and b = 0 the exponential one; both are
// rejected here because the closed form divides by (1 − b) and by b.
func Hyperbolic(qi, d, b float64, n int) (ModelSeries, error) {
	switch {
	case d == 0:
		return ModelSeries{}, &DomainError{Model: ModelHyperbolic, Reason: "D = 0 (cumulative divides by D)"}
	case b == 1:
		return ModelSeries{}, &DomainError{Model: ModelHyperbolic, Reason: "b = 1, use the harmonic model"}
	case b == 0:
		return ModelSeries{}, &DomainError{Model: ModelHyperbolic, Reason: "b = 0, use the exponential model"}
	}
	out := newModelSeries(ModelHyperbolic, n)
	for i := 0; i < n; i++ {
		t := float64(i)
		base := 1 + d*b*t
		if base <= 0 {
			return ModelSeries{}, &DomainError{Model: ModelHyperbolic, Reason: fmt.Sprintf("1 + D·b·t <= 0 at t=%d", i)}
		}
		qo := qi / math.Pow(base, 1/b)
		out.Rate[i] = qo
		out.Cumulative[i] = math.Pow(qi, b) * (math.Pow(qi, 1-b) - math.Pow(qo, 1-b)) / (d * (1 - b))
	}
	return out, out.checkFinite()
}

// Harmonic: qo = qi/(1 + D·t), Np = (qi/D)·ln(1 + D·t).
func Harmonic(qi, d float64, n int) (ModelSeries, error) {
	if d == 0 {
		return ModelSeries{}, &DomainError{Model: ModelHarmonic, Reason: "D = 0 (cumulative divides by D)"}
	}
	out := newModelSeries(ModelHarmonic, n)
	for i := 0; i < n; i++ {
		t := float64(i)
		base := 1 + d*t
		if base <= 0 {
			return ModelSeries{}, &DomainError{Model: ModelHarmonic, Reason: fmt.Sprintf("1 + D·t <= 0 at t=%d", i)}
		}
		out.Rate[i] = qi / base
		out.Cumulative[i] = (qi / d) * math.Log(base)
	}
	return out, out.checkFinite()
}

// Project builds the projection table for a windowed history. All three models
// share qi, D, the grid and the horizon so their columns are comparable.
// Negative D (rising rate) is accepted as is.
func Project(p ResolvedParameters, history WellSeries) (ProjectionTable, error) {
	if p.B < 0 || p.B > 1 || math.IsNaN(p.B) {
		return ProjectionTable{}, fmt.Errorf("%w: b must be within [0, 1], got %v", ErrInvalidParameter, p.B)
	}
	if math.IsNaN(p.Qi) || math.IsInf(p.Qi, 0) || math.IsNaN(p.D) || math.IsInf(p.D, 0) {
		return ProjectionTable{}, fmt.Errorf("%w: qi and D must be finite", ErrInvalidParameter)
	}
	if history.Len() == 0 {
		return ProjectionTable{}, &SelectionError{Level: "window", Err: ErrEmptyWindow}
	}
	grid, err := MonthGrid(history.FirstDate(), history.LastDate(), p.HorizonMonths)
	if err != nil {
		return ProjectionTable{}, err
	}

	n := len(grid)
	exp, err := Exponential(p.Qi, p.D, n)
	if err != nil {
		return ProjectionTable{}, err
	}
	hyp, err := Hyperbolic(p.Qi, p.D, p.B, n)
	if err != nil {
		return ProjectionTable{}, err
	}
	harm, err := Harmonic(p.Qi, p.D, n)
	if err != nil {
		return ProjectionTable{}, err
	}
	return Assemble(grid, exp, hyp, harm)
}

func newModelSeries(m Model, n int) ModelSeries {
	return ModelSeries{Model: m, Rate: make([]float64, n), Cumulative: make([]float64, n)}
}

func (s ModelSeries) checkFinite() error {
	for i := range s.Rate {
		if !isFinite(s.Rate[i]) || !isFinite(s.Cumulative[i]) {
			return &DomainError{Model: s.Model, Reason: fmt.Sprintf("non-finite value at t=%d", i)}
		}
	}
	return nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
