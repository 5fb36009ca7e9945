// internal/mcpserver/tools.go
package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dca-oilgas/internal/services"
	"dca-oilgas/internal/util"
)

const dateLayout = "2006-01-02"

type SelectionInput struct {
	Field     string `json:"field,omitempty" jsonschema:"field name; empty selects the first field"`
	Reservoir string `json:"reservoir,omitempty" jsonschema:"reservoir name; empty selects the first reservoir of the field"`
	Well      string `json:"well,omitempty" jsonschema:"well name; empty selects the first well of the reservoir"`
	Fluid     string `json:"fluid,omitempty" jsonschema:"fluid unit; empty selects the first fluid of the well"`
}

type ForecastInput struct {
	Field            string   `json:"field,omitempty" jsonschema:"field name; empty selects the first field"`
	Reservoir        string   `json:"reservoir,omitempty" jsonschema:"reservoir name; empty selects the first reservoir of the field"`
	Well             string   `json:"well,omitempty" jsonschema:"well name; empty selects the first well of the reservoir"`
	Fluid            string   `json:"fluid,omitempty" jsonschema:"fluid unit; empty selects the first fluid of the well"`
	Start            string   `json:"start,omitempty" jsonschema:"window start date YYYY-MM-DD; empty means first observation"`
	End              string   `json:"end,omitempty" jsonschema:"window end date YYYY-MM-DD; empty means last observation"`
	Qi               *float64 `json:"qi,omitempty" jsonschema:"initial rate override"`
	D                *float64 `json:"d,omitempty" jsonschema:"monthly decline constant override"`
	B                *float64 `json:"b,omitempty" jsonschema:"hyperbolic exponent, strictly between 0 and 1"`
	HorizonMonths    *int     `json:"horizon_months,omitempty" jsonschema:"months to project past the last observation"`
	ZeroRateMode     string   `json:"zero_rate_mode,omitempty" jsonschema:"substitute or exclude"`
	ZeroRateSentinel *float64 `json:"zero_rate_sentinel,omitempty" jsonschema:"positive value used in place of zero rates"`
}

type WarningOutput struct {
	Kind    string `json:"kind"`
	T       int    `json:"t"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type RowOutput struct {
	T      int     `json:"t"`
	Date   string  `json:"date"`
	QoExp  float64 `json:"qo_exp"`
	NpExp  float64 `json:"Np_exp"`
	QoHyp  float64 `json:"qo_hip"`
	NpHyp  float64 `json:"Np_hip"`
	QoHarm float64 `json:"qo_arm"`
	NpHarm float64 `json:"Np_arm"`
}

type ForecastOutput struct {
	SnapshotID  string          `json:"snapshot_id"`
	Field       string          `json:"field"`
	Reservoir   string          `json:"reservoir"`
	Well        string          `json:"well"`
	Fluid       string          `json:"fluid"`
	WindowStart string          `json:"window_start"`
	WindowEnd   string          `json:"window_end"`
	Qi          float64         `json:"qi"`
	D           float64         `json:"d"`
	B           float64         `json:"b"`
	Horizon     int             `json:"horizon_months"`
	DSource     string          `json:"d_source"`
	RMSE        float64         `json:"rmse"`
	Warnings    []WarningOutput `json:"warnings"`
	Rows        []RowOutput     `json:"rows"`
}

type OptionsOutput struct {
	Fields     []string `json:"fields"`
	Reservoirs []string `json:"reservoirs"`
	Wells      []string `json:"wells"`
	Fluids     []string `json:"fluids"`
}

func ForecastDeclineTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "forecast_decline",
		Description: "Estimates the monthly decline constant of one well and projects exponential, hyperbolic and harmonic rate and cumulative production",
	}
}

func ListWellOptionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_well_options",
		Description: "Lists candidate fields, reservoirs, wells and fluids for a partial selection",
	}
}

// ForecastDeclineHandler menjalankan pipeline forecast untuk satu seri.
func ForecastDeclineHandler(svc *services.ForecastService) mcp.ToolHandlerFor[ForecastInput, ForecastOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ForecastInput) (*mcp.CallToolResult, ForecastOutput, error) {
		ctx, cancel := context.WithTimeout(util.WithRequestID(ctx, util.NewID()), callTimeout)
		defer cancel()

		f, err := svc.Forecast(ctx, services.ForecastRequest{
			SelectionRequest: selection(SelectionInput{Field: in.Field, Reservoir: in.Reservoir, Well: in.Well, Fluid: in.Fluid}),
			Start:            in.Start,
			End:              in.End,
			Qi:               in.Qi,
			D:                in.D,
			B:                in.B,
			HorizonMonths:    in.HorizonMonths,
			ZeroRateMode:     in.ZeroRateMode,
			ZeroRateSentinel: in.ZeroRateSentinel,
		})
		if err != nil {
			return nil, ForecastOutput{}, util.FromError(err)
		}
		return nil, forecastOutput(f), nil
	}
}

// ListWellOptionsHandler daftar kandidat bertingkat.
func ListWellOptionsHandler(svc *services.ForecastService) mcp.ToolHandlerFor[SelectionInput, OptionsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SelectionInput) (*mcp.CallToolResult, OptionsOutput, error) {
		opts, err := svc.Options(ctx, selection(in))
		if err != nil {
			return nil, OptionsOutput{}, util.FromError(err)
		}
		return nil, OptionsOutput{
			Fields:     nonNil(opts.Fields),
			Reservoirs: nonNil(opts.Reservoirs),
			Wells:      nonNil(opts.Wells),
			Fluids:     nonNil(opts.Fluids),
		}, nil
	}
}

func selection(in SelectionInput) services.SelectionRequest {
	return services.SelectionRequest{Field: in.Field, Reservoir: in.Reservoir, Well: in.Well, Fluid: in.Fluid}
}

func forecastOutput(f services.Forecast) ForecastOutput {
	out := ForecastOutput{
		SnapshotID:  f.SnapshotID,
		Field:       f.Selection.Field,
		Reservoir:   f.Selection.Reservoir,
		Well:        f.Selection.Well,
		Fluid:       f.Selection.Fluid,
		WindowStart: day(f.Window.Start),
		WindowEnd:   day(f.Window.End),
		Qi:          f.Parameters.Qi,
		D:           f.Parameters.D,
		B:           f.Parameters.B,
		Horizon:     f.Parameters.HorizonMonths,
		DSource:     f.Parameters.DSource,
		RMSE:        f.Fit.RMSE,
		Warnings:    make([]WarningOutput, 0, len(f.Warnings)),
		Rows:        make([]RowOutput, 0, len(f.Points)),
	}
	for _, w := range f.Warnings {
		out.Warnings = append(out.Warnings, WarningOutput{Kind: string(w.Kind), T: w.T, Date: day(w.Date), Message: w.Message})
	}
	for _, p := range f.Points {
		out.Rows = append(out.Rows, RowOutput{
			T: p.T, Date: day(p.Date),
			QoExp: p.QoExp, NpExp: p.NpExp,
			QoHyp: p.QoHyp, NpHyp: p.NpHyp,
			QoHarm: p.QoHarm, NpHarm: p.NpHarm,
		})
	}
	return out
}

func day(t time.Time) string { return t.Format(dateLayout) }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
