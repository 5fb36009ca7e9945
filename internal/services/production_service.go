// internal/services/production_service.go
// Layanan produksi: histori seri + selisih aktual vs fit eksponensial

package services

import (
	"math"
	"time"

	"dca-oilgas/internal/dca"
)

type HistoryPoint struct {
	T    int       `json:"t"`
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

type Variance struct {
	T      int       `json:"t"`
	Date   time.Time `json:"date"`
	Actual float64   `json:"actual"`
	Fitted float64   `json:"fitted"`
	Value  float64   `json:"value"`   // actual - fitted
	DeltaP float64   `json:"delta_p"` // % variance
}

// FitStats ringkasan kualitas fit pada window historis.
type FitStats struct {
	Points     int       `json:"points"`
	RMSE       float64   `json:"rmse"`
	MeanDeltaP float64   `json:"mean_delta_p"`
	LogRateR   float64   `json:"log_rate_r"` // korelasi t vs ln(q), q > 0; -1 = eksponensial sempurna
	Outliers   []Outlier `json:"outliers"`
}

func historyPoints(s dca.WellSeries) []HistoryPoint {
	obs := s.Observations()
	out := make([]HistoryPoint, len(obs))
	for i, o := range obs {
		out[i] = HistoryPoint{T: o.T, Date: o.Date, Rate: o.Rate}
	}
	return out
}

// VarianceMonthly membandingkan rate aktual dengan qi·e^(−D·t) pada t yang sama.
// DeltaP is 0 where the fitted rate is 0.
func VarianceMonthly(history dca.WellSeries, qi, d float64) ([]Variance, FitStats) {
	obs := history.Observations()
	out := make([]Variance, 0, len(obs))
	var sq, pct float64
	var npct int
	var ts, lnq []float64
	for _, o := range obs {
		if o.Rate > 0 {
			ts = append(ts, float64(o.T))
			lnq = append(lnq, math.Log(o.Rate))
		}
		f := qi * math.Exp(-d*float64(o.T))
		diff := o.Rate - f
		var p float64
		if f != 0 {
			p = diff / f * 100.0
			pct += p
			npct++
		}
		sq += diff * diff
		out = append(out, Variance{T: o.T, Date: o.Date, Actual: o.Rate, Fitted: f, Value: diff, DeltaP: p})
	}
	st := FitStats{Points: len(out), Outliers: []Outlier{}}
	if len(out) > 0 {
		st.RMSE = math.Sqrt(sq / float64(len(out)))
		st.Outliers, _ = ZScoreOutliers(out, DefaultOutlierZ)
	}
	if r, err := PearsonCorrelation(ts, lnq); err == nil {
		st.LogRateR = r
	}
	if npct > 0 {
		st.MeanDeltaP = pct / float64(npct)
	}
	return out, st
}
