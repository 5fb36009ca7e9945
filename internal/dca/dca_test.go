// internal/dca/dca_test.go

package dca_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dca-oilgas/internal/dca"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monthly membuat record bulanan mulai tanggal 1 bulan start.
func monthly(well string, start time.Time, rates ...float64) []dca.ProductionRecord {
	out := make([]dca.ProductionRecord, len(rates))
	for i, q := range rates {
		out[i] = dca.ProductionRecord{
			Field: "CAMPO-1", Reservoir: "YAC-A", Well: well, Fluid: "aceite",
			Date: start.AddDate(0, i, 0), Rate: q,
		}
	}
	return out
}

func seriesOf(t *testing.T, recs []dca.ProductionRecord) dca.WellSeries {
	t.Helper()
	s, err := dca.Filter(recs, dca.Selection{Field: "CAMPO-1", Reservoir: "YAC-A", Well: recs[0].Well, Fluid: "aceite"})
	require.NoError(t, err)
	return s
}

func closeRel(t *testing.T, want, got, tol float64, msgAndArgs ...any) {
	t.Helper()
	scale := math.Max(1, math.Abs(want))
	assert.LessOrEqual(t, math.Abs(want-got), tol*scale, msgAndArgs...)
}

func TestEstimateD_ConstantSeriesIsZero(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 250, 250, 250, 250, 250, 250))
	est, err := dca.EstimateD(s, dca.DefaultZeroRatePolicy())
	require.NoError(t, err)
	assert.Equal(t, 0.0, est.D)
	assert.Equal(t, 250.0, est.Qi)
	assert.Equal(t, 6, est.Points)
}

func TestEstimateD_GeometricDecay(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 100, 90, 81, 72.9))
	est, err := dca.EstimateD(s, dca.DefaultZeroRatePolicy())
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(0.9), est.D, 1e-12)
}

func TestEstimateD_RoundedObservations(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 100, 90, 81, 73))
	est, err := dca.EstimateD(s, dca.DefaultZeroRatePolicy())
	require.NoError(t, err)

	want := (1*math.Log(100.0/90) + 2*math.Log(100.0/81) + 3*math.Log(100.0/73)) / 14
	assert.InDelta(t, want, est.D, 1e-12)
	assert.InDelta(t, -math.Log(0.9), est.D, 1e-3)
}

func TestEstimateD_SingleObservationIsUndetermined(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 100))
	_, err := dca.EstimateD(s, dca.DefaultZeroRatePolicy())
	assert.ErrorIs(t, err, dca.ErrUndeterminedDecline)
}

func TestEstimateD_ZeroRateSubstitutedWithWarning(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 100, 0, 81))
	est, err := dca.EstimateD(s, dca.DefaultZeroRatePolicy())
	require.NoError(t, err)

	want := (1*math.Log(100.0/1) + 2*math.Log(100.0/81)) / 5
	assert.InDelta(t, want, est.D, 1e-12)
	require.Len(t, est.Warnings, 1)
	assert.Equal(t, dca.WarnZeroRateSubstituted, est.Warnings[0].Kind)
	assert.Equal(t, 1, est.Warnings[0].T)
	assert.Equal(t, date(2020, 2, 1), est.Warnings[0].Date)
}

func TestEstimateD_ZeroRateCustomSentinel(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 100, 0, 81))
	est, err := dca.EstimateD(s, dca.ZeroRatePolicy{Mode: dca.ZeroSubstitute, Sentinel: 50})
	require.NoError(t, err)
	want := (1*math.Log(100.0/50) + 2*math.Log(100.0/81)) / 5
	assert.InDelta(t, want, est.D, 1e-12)
}

func TestEstimateD_ZeroRateExcluded(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 100, 0, 81))
	est, err := dca.EstimateD(s, dca.ZeroRatePolicy{Mode: dca.ZeroExclude})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(100.0/81)/2, est.D, 1e-12)
	assert.Equal(t, 2, est.Points)
	require.Len(t, est.Warnings, 1)
	assert.Equal(t, dca.WarnZeroRateExcluded, est.Warnings[0].Kind)
}

func TestEstimateD_ZeroInitialRateExcludedIsUndetermined(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 0, 90, 81))
	_, err := dca.EstimateD(s, dca.ZeroRatePolicy{Mode: dca.ZeroExclude})
	assert.ErrorIs(t, err, dca.ErrUndeterminedDecline)
}

func TestEstimateD_RejectsBadPolicyAndRates(t *testing.T) {
	s := seriesOf(t, monthly("P-1", date(2020, 1, 1), 100, 90))
	_, err := dca.EstimateD(s, dca.ZeroRatePolicy{Mode: dca.ZeroSubstitute, Sentinel: -1})
	assert.ErrorIs(t, err, dca.ErrInvalidParameter)

	_, err = dca.EstimateD(s, dca.ZeroRatePolicy{Mode: "interpolate"})
	assert.ErrorIs(t, err, dca.ErrInvalidParameter)

	neg := seriesOf(t, monthly("P-1", date(2020, 1, 1), 100, -5))
	_, err = dca.EstimateD(neg, dca.DefaultZeroRatePolicy())
	assert.ErrorIs(t, err, dca.ErrInvalidParameter)
}

func TestModels_InitialRateEqualsQi(t *testing.T) {
	for _, d := range []float64{0.05, 0.3, -0.02} {
		for _, b := range []float64{0.1, 0.5, 0.65, 0.9} {
			exp, err := dca.Exponential(1000, d, 3)
			require.NoError(t, err)
			hyp, err := dca.Hyperbolic(1000, d, b, 3)
			require.NoError(t, err)
			harm, err := dca.Harmonic(1000, d, 3)
			require.NoError(t, err)

			assert.Equal(t, 1000.0, exp.Rate[0])
			assert.Equal(t, 1000.0, hyp.Rate[0])
			assert.Equal(t, 1000.0, harm.Rate[0])
			assert.Equal(t, 0.0, exp.Cumulative[0])
			assert.Equal(t, 0.0, hyp.Cumulative[0])
			assert.Equal(t, 0.0, harm.Cumulative[0])
		}
	}
}

func TestModels_CumulativeNonDecreasing(t *testing.T) {
	const n = 120
	for _, d := range []float64{0.01, 0.05, 0.4} {
		for _, b := range []float64{0.05, 0.5, 0.65, 0.95} {
			exp, err := dca.Exponential(800, d, n)
			require.NoError(t, err)
			hyp, err := dca.Hyperbolic(800, d, b, n)
			require.NoError(t, err)
			harm, err := dca.Harmonic(800, d, n)
			require.NoError(t, err)
			for i := 1; i < n; i++ {
				assert.GreaterOrEqual(t, exp.Cumulative[i], exp.Cumulative[i-1])
				assert.GreaterOrEqual(t, hyp.Cumulative[i], hyp.Cumulative[i-1])
				assert.GreaterOrEqual(t, harm.Cumulative[i], harm.Cumulative[i-1])
			}
		}
	}
}

func TestHyperbolic_SmallBApproachesExponential(t *testing.T) {
	const n = 25
	exp, err := dca.Exponential(100, 0.05, n)
	require.NoError(t, err)
	hyp, err := dca.Hyperbolic(100, 0.05, 0.001, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		closeRel(t, exp.Rate[i], hyp.Rate[i], 1e-3, "rate t=%d", i)
		closeRel(t, exp.Cumulative[i], hyp.Cumulative[i], 1e-3, "cum t=%d", i)
	}
}

func TestHyperbolic_UnitBApproachesHarmonic(t *testing.T) {
	const n = 25
	harm, err := dca.Harmonic(100, 0.05, n)
	require.NoError(t, err)
	hyp, err := dca.Hyperbolic(100, 0.05, 0.999, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		closeRel(t, harm.Rate[i], hyp.Rate[i], 1e-3, "rate t=%d", i)
		closeRel(t, harm.Cumulative[i], hyp.Cumulative[i], 1e-3, "cum t=%d", i)
	}
}

func TestExponential_ConcreteScenario(t *testing.T) {
	exp, err := dca.Exponential(1000, 0.05, 13)
	require.NoError(t, err)
	assert.InDelta(t, 548.81, exp.Rate[12], 0.01)
	assert.InDelta(t, 9023.8, exp.Cumulative[12], 0.05)
}

func TestModels_DomainGuards(t *testing.T) {
	cases := []struct {
		name  string
		run   func() error
		model dca.Model
	}{
		{"exp D=0", func() error { _, err := dca.Exponential(100, 0, 5); return err }, dca.ModelExponential},
		{"hyp D=0", func() error { _, err := dca.Hyperbolic(100, 0, 0.5, 5); return err }, dca.ModelHyperbolic},
		{"hyp b=1", func() error { _, err := dca.Hyperbolic(100, 0.1, 1, 5); return err }, dca.ModelHyperbolic},
		{"hyp b=0", func() error { _, err := dca.Hyperbolic(100, 0.1, 0, 5); return err }, dca.ModelHyperbolic},
		{"harm D=0", func() error { _, err := dca.Harmonic(100, 0, 5); return err }, dca.ModelHarmonic},
		{"harm base<=0", func() error { _, err := dca.Harmonic(100, -0.5, 5); return err }, dca.ModelHarmonic},
		{"hyp base<=0", func() error { _, err := dca.Hyperbolic(100, -0.5, 0.5, 10); return err }, dca.ModelHyperbolic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, dca.ErrDomain)
			var de *dca.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tc.model, de.Model)
		})
	}
}

func TestExponential_NegativeDIsAllowed(t *testing.T) {
	exp, err := dca.Exponential(100, -0.01, 4)
	require.NoError(t, err)
	assert.Greater(t, exp.Rate[3], exp.Rate[0])
	assert.Greater(t, exp.Cumulative[3], exp.Cumulative[2])
}
