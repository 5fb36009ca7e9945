// internal/services/summary_service.go
// Ringkasan naratif forecast: LLM bila tersedia, template deterministik bila tidak.

package services

import (
	"context"
	"fmt"
	"strings"

	"dca-oilgas/internal/dca"
	"dca-oilgas/internal/util"
)

type Summary struct {
	Text     string   `json:"text"`
	Source   string   `json:"source"` // llm|template
	Model    string   `json:"model,omitempty"`
	Forecast Forecast `json:"forecast"`
}

const summarySystem = `You are a petroleum reservoir engineer.
Summarize a decline-curve forecast for a production engineer in at most 6 sentences.
Use only the numbers given. Mention the decline constant, the spread between the
exponential, hyperbolic and harmonic projections at the end of the horizon, and any data warnings.`

// Summarize runs the forecast and describes it. LLM failures fall back to the
// template so the endpoint always answers.
func (s *ForecastService) Summarize(ctx context.Context, req ForecastRequest) (Summary, error) {
	f, err := s.Forecast(ctx, req)
	if err != nil {
		return Summary{}, err
	}
	out := Summary{Text: TemplateSummary(f), Source: "template", Forecast: f}
	if s.LLM == nil {
		return out, nil
	}

	text, err := s.LLM.Complete(ctx, summarySystem, summaryPrompt(f))
	if err != nil || strings.TrimSpace(text) == "" {
		msg := "empty completion"
		if err != nil {
			msg = err.Error()
		}
		util.LogJSON(util.LogEntry{Level: "warn", Event: "forecast.summary", RequestID: util.RequestID(ctx), Error: msg})
		return out, nil
	}
	out.Text, out.Source, out.Model = text, "llm", s.LLM.Model()
	return out, nil
}

// TemplateSummary ringkasan deterministik (tanpa LLM).
func TemplateSummary(f Forecast) string {
	p := f.Parameters
	sel := f.Selection
	var b strings.Builder
	fmt.Fprintf(&b, "Well %s (%s, %s/%s): ", sel.Well, sel.Fluid, sel.Field, sel.Reservoir)
	fmt.Fprintf(&b, "history %s to %s, qi = %.4g, D = %.4g per month (%s), b = %.2f, horizon %d months.",
		f.Window.Start.Format("2006-01-02"), f.Window.End.Format("2006-01-02"),
		p.Qi, p.D, p.DSource, p.B, p.HorizonMonths)

	if n := len(f.Points); n > 0 {
		last := f.Points[n-1]
		fmt.Fprintf(&b, " At %s: rate exp %.4g, hyp %.4g, harm %.4g; cumulative exp %.4g, hyp %.4g, harm %.4g.",
			last.Date.Format("2006-01-02"), last.QoExp, last.QoHyp, last.QoHarm, last.NpExp, last.NpHyp, last.NpHarm)
	}
	if f.Fit.Points > 0 {
		fmt.Fprintf(&b, " Exponential fit RMSE %.4g over %d points.", f.Fit.RMSE, f.Fit.Points)
	}
	if p.D < 0 {
		b.WriteString(" D is negative: the history is rising, projections grow instead of decline.")
	}
	if n := countKind(f.Warnings, dca.WarnZeroRateSubstituted) + countKind(f.Warnings, dca.WarnZeroRateExcluded); n > 0 {
		fmt.Fprintf(&b, " %d zero-rate month(s) affected the estimate.", n)
	}
	if n := countKind(f.Warnings, dca.WarnDuplicateDate); n > 0 {
		fmt.Fprintf(&b, " %d duplicate date(s) in the history.", n)
	}
	return b.String()
}

func summaryPrompt(f Forecast) string {
	var b strings.Builder
	b.WriteString(TemplateSummary(f))
	b.WriteString("\n\nProjection (t, date, qo_exp, qo_hip, qo_arm):\n")
	step := max(1, len(f.Points)/12)
	for i := 0; i < len(f.Points); i += step {
		pt := f.Points[i]
		fmt.Fprintf(&b, "%d %s %.4g %.4g %.4g\n", pt.T, pt.Date.Format("2006-01-02"), pt.QoExp, pt.QoHyp, pt.QoHarm)
	}
	return b.String()
}

func countKind(ws []dca.Warning, k dca.WarningKind) int {
	n := 0
	for _, w := range ws {
		if w.Kind == k {
			n++
		}
	}
	return n
}
