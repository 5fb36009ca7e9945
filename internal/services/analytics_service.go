// internal/services/analytics_service.go
// Layanan analitik: outlier residual (z-score) & korelasi untuk diagnosa fit

package services

import (
	"errors"
	"math"
	"time"
)

// Outlier bulan historis dengan residual menyimpang dari fit eksponensial.
type Outlier struct {
	T      int       `json:"t"`
	Date   time.Time `json:"date"`
	Value  float64   `json:"value"` // actual - fitted
	ZScore float64   `json:"z_score"`
}

// DefaultOutlierZ ambang |z| residual.
const DefaultOutlierZ = 2.0

// ZScoreOutliers mendeteksi residual anomali berbasis z-score sederhana (mean & stddev populasi).
func ZScoreOutliers(v []Variance, minZ float64) ([]Outlier, error) {
	if len(v) == 0 {
		return nil, errors.New("empty series")
	}
	// mean
	var sum float64
	for _, p := range v {
		sum += p.Value
	}
	mean := sum / float64(len(v))

	// stddev
	var ss, scale float64
	for _, p := range v {
		d := p.Value - mean
		ss += d * d
		scale = math.Max(scale, math.Abs(p.Actual))
	}
	std := math.Sqrt(ss / float64(len(v)))
	// residual setingkat noise floating point dianggap fit sempurna
	if std == 0 || std <= 1e-9*scale {
		return []Outlier{}, nil
	}

	out := []Outlier{}
	for _, p := range v {
		z := (p.Value - mean) / std
		if math.Abs(z) >= minZ {
			out = append(out, Outlier{T: p.T, Date: p.Date, Value: p.Value, ZScore: z})
		}
	}
	return out, nil
}

// PearsonCorrelation menghitung korelasi Pearson antar 2 deret (berdasarkan index sejajar).
// Deret yang (hampir) konstan tidak punya korelasi terdefinisi: hasilnya 0.
func PearsonCorrelation(a, b []float64) (float64, error) {
	n := min(len(a), len(b))
	if n < 2 {
		return 0, errors.New("insufficient points for correlation")
	}
	var mx, my float64
	for i := 0; i < n; i++ {
		mx += a[i]
		my += b[i]
	}
	mx /= float64(n)
	my /= float64(n)

	// dua lintasan (terpusat) supaya deret konstan memberi varians ~0, bukan negatif
	var sxx, syy, sxy, scaleX, scaleY float64
	for i := 0; i < n; i++ {
		dx := a[i] - mx
		dy := b[i] - my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
		scaleX = math.Max(scaleX, math.Abs(a[i]))
		scaleY = math.Max(scaleY, math.Abs(b[i]))
	}
	if flatSpread(sxx, n, scaleX) || flatSpread(syy, n, scaleY) {
		return 0, nil
	}
	r := sxy / math.Sqrt(sxx*syy)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, nil
	}
	return math.Max(-1, math.Min(1, r)), nil
}

// flatSpread: stddev setingkat noise floating point relatif terhadap skala deret.
func flatSpread(ss float64, n int, scale float64) bool {
	if !(ss > 0) || math.IsInf(ss, 0) {
		return true
	}
	return math.Sqrt(ss/float64(n)) <= 1e-9*scale
}
