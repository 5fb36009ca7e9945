// internal/dca/window.go
// WindowSelector: potong seri ke rentang tanggal & indeks ulang t.

package dca

import "time"

// ApplyWindow restricts the series to [start, end] and re-derives t from zero.
//
// The interval is clamped to the series bounds first, then start is snapped
// down to the first day of its month. A zero start or end means the series
// bound. t counts observations, not calendar months: missing months are not
// backfilled. Returns the windowed series, the resolved window and t of the
// first retained observation (always 0).
func ApplyWindow(series WellSeries, start, end time.Time) (WellSeries, AnalysisWindow, int, error) {
	if series.Len() == 0 {
		return WellSeries{}, AnalysisWindow{}, 0, &SelectionError{Level: "window", Err: ErrEmptyWindow}
	}
	first, last := series.FirstDate(), series.LastDate()

	start = dateOnly(start)
	end = dateOnly(end)
	if start.IsZero() || start.Before(first) {
		start = first
	}
	if end.IsZero() || end.After(last) {
		end = last
	}
	start = monthStart(start)
	win := AnalysisWindow{Start: start, End: end}

	obs := make([]Observation, 0, series.Len())
	for _, o := range series.obs {
		if o.Date.Before(start) || o.Date.After(end) {
			continue
		}
		o.T = len(obs)
		obs = append(obs, o)
	}
	if len(obs) == 0 {
		return WellSeries{}, win, 0, &SelectionError{Level: "window", Value: start.Format("2006-01-02"), Err: ErrEmptyWindow}
	}

	// warning duplikat ikut window, t dihitung ulang
	var warnings []Warning
	for i := 1; i < len(obs); i++ {
		if obs[i].Date.Equal(obs[i-1].Date) {
			warnings = append(warnings, Warning{
				Kind:    WarnDuplicateDate,
				Date:    obs[i].Date,
				T:       obs[i].T,
				Message: "duplicate date in series; both observations kept",
			})
		}
	}
	return WellSeries{key: series.key, obs: obs, warnings: warnings}, win, obs[0].T, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// addMonths menambah n bulan; hari di-clamp ke akhir bulan (31 Jan + 1 = 28/29 Feb).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
