// internal/handlers/http/request.go
// Parsing request: query string (GET) atau JSON body (POST).

package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"dca-oilgas/internal/services"
	"dca-oilgas/internal/util"
)

func selectionFromQuery(q url.Values) services.SelectionRequest {
	return services.SelectionRequest{
		Field:     q.Get("field"),
		Reservoir: q.Get("reservoir"),
		Well:      q.Get("well"),
		Fluid:     q.Get("fluid"),
	}
}

func forecastFromQuery(q url.Values) (services.ForecastRequest, error) {
	in := services.ForecastRequest{
		SelectionRequest: selectionFromQuery(q),
		Start:            q.Get("start"),
		End:              q.Get("end"),
		ZeroRateMode:     q.Get("zero_rate_mode"),
	}
	var err error
	if in.Qi, err = optFloat(q, "qi"); err != nil {
		return in, err
	}
	if in.D, err = optFloat(q, "d"); err != nil {
		return in, err
	}
	if in.B, err = optFloat(q, "b"); err != nil {
		return in, err
	}
	if in.ZeroRateSentinel, err = optFloat(q, "zero_rate_sentinel"); err != nil {
		return in, err
	}
	if v := strings.TrimSpace(q.Get("horizon_months")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, util.BadInput("horizon_months: not an integer")
		}
		in.HorizonMonths = &n
	}
	return in, nil
}

// decodeForecast: POST JSON body, selain itu query string.
func decodeForecast(r *http.Request) (services.ForecastRequest, error) {
	if r.Method == http.MethodPost && r.Body != nil && r.ContentLength != 0 {
		var in services.ForecastRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return in, util.BadInput("invalid json: " + err.Error())
		}
		return in, nil
	}
	return forecastFromQuery(r.URL.Query())
}

func optFloat(q url.Values, key string) (*float64, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, util.BadInput(key + ": not a number")
	}
	return &f, nil
}
