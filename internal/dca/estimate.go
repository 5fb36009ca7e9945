// internal/dca/estimate.go
// DeclineEstimator: OLS konstanta D dari linearisasi decline eksponensial.

package dca

import (
	"fmt"
	"math"
)

// ZeroRateMode menentukan perlakuan rate nol sebelum logaritma.
type ZeroRateMode string

const (
	// ZeroSubstitute replaces q = 0 with the policy sentinel before ln().
	ZeroSubstitute ZeroRateMode = "substitute"
	// ZeroExclude drops q = 0 observations from both sums.
	ZeroExclude ZeroRateMode = "exclude"
)

// DefaultZeroSentinel nilai pengganti rate nol (kebijakan aplikasi asal).
const DefaultZeroSentinel = 1.0

// ZeroRatePolicy is the explicit policy for observed zero rates. Substitution
// biases D (a shut-in month reads as a rate of Sentinel); every affected
// observation is reported as a Warning.
type ZeroRatePolicy struct {
	Mode     ZeroRateMode `json:"mode"`
	Sentinel float64      `json:"sentinel"`
}

func DefaultZeroRatePolicy() ZeroRatePolicy {
	return ZeroRatePolicy{Mode: ZeroSubstitute, Sentinel: DefaultZeroSentinel}
}

// Validate mengisi default dan menolak kebijakan yang tidak dikenal.
func (p ZeroRatePolicy) Validate() (ZeroRatePolicy, error) {
	if p.Mode == "" {
		p.Mode = ZeroSubstitute
	}
	switch p.Mode {
	case ZeroSubstitute:
		if p.Sentinel == 0 {
			p.Sentinel = DefaultZeroSentinel
		}
		if !(p.Sentinel > 0) || math.IsInf(p.Sentinel, 0) {
			return p, fmt.Errorf("%w: zero-rate sentinel must be positive, got %v", ErrInvalidParameter, p.Sentinel)
		}
	case ZeroExclude:
	default:
		return p, fmt.Errorf("%w: unknown zero-rate mode %q", ErrInvalidParameter, p.Mode)
	}
	return p, nil
}

// Estimate hasil estimasi D.
type Estimate struct {
	D        float64   `json:"d"`
	Qi       float64   `json:"qi"`
	Points   int       `json:"points"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// EstimateD fits the decline constant of a windowed series:
//
//	D = Σ t·ln(qi/q_t) / Σ t²
//
// with qi the rate at t = 0. A window with a single usable observation has
// Σ t² = 0 and fails with ErrUndeterminedDecline; the caller must then supply
// D. Negative or non-finite rates are rejected with ErrInvalidParameter.
func EstimateD(series WellSeries, policy ZeroRatePolicy) (Estimate, error) {
	pol, err := policy.Validate()
	if err != nil {
		return Estimate{}, err
	}
	obs := series.obs
	if len(obs) == 0 {
		return Estimate{}, ErrUndeterminedDecline
	}
	for _, o := range obs {
		if o.Rate < 0 || math.IsNaN(o.Rate) || math.IsInf(o.Rate, 0) {
			return Estimate{}, fmt.Errorf("%w: rate %v at t=%d", ErrInvalidParameter, o.Rate, o.T)
		}
	}

	est := Estimate{Qi: obs[0].Rate}

	// qi ikut kebijakan yang sama supaya ln(qi/q) selalu terdefinisi
	qi := obs[0].Rate
	if qi == 0 {
		if pol.Mode == ZeroExclude {
			est.Warnings = append(est.Warnings, zeroWarning(pol, obs[0]))
			return est, fmt.Errorf("%w: initial rate is zero", ErrUndeterminedDecline)
		}
		qi = pol.Sentinel
	}

	var num, den float64
	for _, o := range obs {
		q := o.Rate
		if q == 0 {
			est.Warnings = append(est.Warnings, zeroWarning(pol, o))
			if pol.Mode == ZeroExclude {
				continue
			}
			q = pol.Sentinel
		}
		t := float64(o.T)
		num += t * math.Log(qi/q)
		den += t * t
		est.Points++
	}

	if den == 0 {
		return est, ErrUndeterminedDecline
	}
	est.D = num / den
	return est, nil
}

func zeroWarning(pol ZeroRatePolicy, o Observation) Warning {
	if pol.Mode == ZeroExclude {
		return Warning{
			Kind:    WarnZeroRateExcluded,
			Date:    o.Date,
			T:       o.T,
			Message: "zero rate excluded from decline fit",
		}
	}
	return Warning{
		Kind:    WarnZeroRateSubstituted,
		Date:    o.Date,
		T:       o.T,
		Message: fmt.Sprintf("zero rate replaced by %g before ln()", pol.Sentinel),
	}
}
