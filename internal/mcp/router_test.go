// mcp/router_test.go

package mcp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dca-oilgas/internal/mcp"
)

// echo tool: mengembalikan payload yang diterima
func init() {
	mcp.RegisterFunc("echo_test", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"echo": in})
	})
	mcp.RegisterFunc("fail_test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"unprocessable","message":"b = 1"}`))
	})
}

func route(t *testing.T, rt *mcp.Router, body any) (*httptest.ResponseRecorder, mcp.ToolResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp/route", bytes.NewReader(raw)))
	var out mcp.ToolResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

// Pastikan /mcp/route menjalankan tool terdaftar dan meneruskan payload
func TestMCPRouteExecutesRegisteredTool(t *testing.T) {
	rec, out := route(t, &mcp.Router{}, map[string]any{
		"tool":    "echo_test",
		"payload": map[string]any{"well": "P-1"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "explicit", out.DecisionBy)
	require.Len(t, out.Items, 1)
	assert.Equal(t, map[string]any{"echo": map[string]any{"well": "P-1"}}, out.Items[0].Data)
}

func TestMCPRoute_ExplicitToolErrorStatusPassesThrough(t *testing.T) {
	rec, out := route(t, &mcp.Router{}, map[string]any{"tool": "fail_test"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotNil(t, out.Items[0].Error)

	rec, out = route(t, &mcp.Router{}, map[string]any{"tool": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "tool not found: nope", out.Items[0].Error)
}

func TestMCPRoute_PlanRoutesAreCapped(t *testing.T) {
	routes := make([]map[string]any, 5)
	for i := range routes {
		routes[i] = map[string]any{"tool": "echo_test", "params": map[string]any{"i": i}}
	}
	rec, out := route(t, &mcp.Router{MaxRoutes: 3}, map[string]any{"routes": routes})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, out.RoutesExecuted)
	assert.Equal(t, "explicit-plan", out.DecisionBy)
}

func TestMCPRoute_QuestionNeedsPlanner(t *testing.T) {
	rec, _ := route(t, &mcp.Router{}, map[string]any{"question": "forecast pozo P-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = route(t, &mcp.Router{Planner: mcp.KeywordPlanner{}}, map[string]any{"question": "what is the weather"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	(&mcp.Router{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp/route", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKeywordPlanner(t *testing.T) {
	cases := []struct {
		q      string
		tool   string
		params map[string]any
	}{
		{"Pronóstico de declinación del pozo P-12 aceite a 24 meses", "forecast_decline",
			map[string]any{"well": "P-12", "fluid": "aceite", "horizon_months": float64(24)}},
		{"forecast well W_7 gas", "forecast_decline", map[string]any{"well": "W_7", "fluid": "gas"}},
		{"give me a summary for well P-1", "summarize_forecast", map[string]any{"well": "P-1"}},
		{"¿Qué pozos hay en el campo?", "list_well_options", map[string]any{}},
		{"producción histórica pozo P-3", "get_production", map[string]any{"well": "P-3"}},
	}
	for _, tc := range cases {
		t.Run(tc.q, func(t *testing.T) {
			plan, err := mcp.KeywordPlanner{}.Plan(context.Background(), tc.q)
			require.NoError(t, err)
			require.Len(t, plan.Routes, 1)
			assert.Equal(t, tc.tool, plan.Routes[0].Tool)
			var got map[string]any
			require.NoError(t, json.Unmarshal(plan.Routes[0].Params, &got))
			assert.Equal(t, tc.params, got)
		})
	}

	_, err := mcp.KeywordPlanner{}.Plan(context.Background(), "  ")
	assert.ErrorIs(t, err, mcp.ErrNoPlan)
}

type fakeJSONClient struct {
	out string
	err error
}

func (f fakeJSONClient) Complete(context.Context, string, string) (string, error) { return "", nil }
func (f fakeJSONClient) AnswerJSON(context.Context, string, string) (string, error) {
	return f.out, f.err
}
func (f fakeJSONClient) Model() string { return "fake" }

func TestLLMPlanner_KeepsOnlyRegisteredTools(t *testing.T) {
	p := mcp.LLMPlanner{Client: fakeJSONClient{out: `{"routes":[{"tool":"echo_test","params":{"x":1}},{"tool":"ghost"}],"reason":"llm"}`}}
	plan, err := p.Plan(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, plan.Routes, 1)
	assert.Equal(t, "echo_test", plan.Routes[0].Tool)

	_, err = mcp.LLMPlanner{Client: fakeJSONClient{out: `{"routes":[{"tool":"ghost"}]}`}}.Plan(context.Background(), "q")
	assert.ErrorIs(t, err, mcp.ErrNoPlan)
}

func TestChainPlanner_FallsBackToKeywords(t *testing.T) {
	chain := mcp.ChainPlanner{
		mcp.LLMPlanner{Client: fakeJSONClient{err: errors.New("timeout")}},
		mcp.KeywordPlanner{},
	}
	plan, err := chain.Plan(context.Background(), "forecast pozo P-1")
	require.NoError(t, err)
	assert.Equal(t, "forecast_decline", plan.Routes[0].Tool)
	assert.Equal(t, "keyword", plan.Reason)
}

func TestToolsHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	mcp.ToolsHandler(rec, httptest.NewRequest(http.MethodGet, "/mcp/tools", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Tools []mcp.ToolDef `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Tools, 4)
}
