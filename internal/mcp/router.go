// internal/mcp/router.go
// Router MCP: menerima request lalu memilih & mengeksekusi tool.

package mcp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"dca-oilgas/internal/util"
)

const defaultMaxRoutes = 8

// Router memilih tool dengan urutan: explicit tool -> routes/plan -> planner(question).
type Router struct {
	Planner   Planner // nil = hanya explicit
	MaxRoutes int
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := r.Header.Get("X-Request-ID")

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		rt.fail(w, reqID, start, util.BadInput("read body error"), "")
		return
	}
	defer r.Body.Close()

	var req ToolRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		rt.fail(w, reqID, start, util.BadInput("invalid json"), "")
		return
	}

	var (
		routes   []Route
		decision string
	)
	switch {
	case req.Tool != "":
		routes, decision = []Route{{Tool: req.Tool, Params: req.Payload}}, "explicit"
	case req.Plan != nil && len(req.Plan.Routes) > 0:
		routes, decision = req.Plan.Routes, "explicit-plan"
	case len(req.Routes) > 0:
		routes, decision = req.Routes, "explicit-plan"
	case req.Question != "" && rt.Planner != nil:
		plan, err := rt.Planner.Plan(r.Context(), req.Question)
		if err != nil {
			if errors.Is(err, ErrNoPlan) {
				rt.fail(w, reqID, start, util.BadInput("no tool matches the question"), req.Question)
			} else {
				rt.fail(w, reqID, start, util.Internal("planner: "+err.Error()), req.Question)
			}
			return
		}
		routes, decision = plan.Routes, "planner:"+plan.Reason
	default:
		rt.fail(w, reqID, start, util.BadInput("tool, routes or question required"), "")
		return
	}

	limit := rt.MaxRoutes
	if limit <= 0 {
		limit = defaultMaxRoutes
	}
	if len(routes) > limit {
		routes = routes[:limit]
	}

	items := ExecuteRoutes(r.Context(), routes)

	status := http.StatusOK
	if decision == "explicit" && items[0].Status >= 400 {
		status = items[0].Status
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ToolResponse{
		Mode:           "mcp",
		DecisionBy:     decision,
		RoutesExecuted: len(items),
		Items:          items,
	})

	tools := make([]string, len(routes))
	for i, x := range routes {
		tools[i] = x.Tool
	}
	util.LogJSON(util.LogEntry{
		Event:     "mcp.route",
		RequestID: reqID,
		Fields: map[string]any{
			"question":         req.Question,
			"request_tool":     req.Tool,
			"chosen_tools":     tools,
			"decision_by":      decision,
			"registered_count": len(List()),
		},
		DurationMS: time.Since(start).Milliseconds(),
	})
}

func (rt *Router) fail(w http.ResponseWriter, reqID string, start time.Time, ae util.AppError, question string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ae.Status())
	_ = json.NewEncoder(w).Encode(ae)
	util.LogJSON(util.LogEntry{
		Level:      "error",
		Event:      "mcp.route",
		RequestID:  reqID,
		Fields:     map[string]any{"question": question},
		DurationMS: time.Since(start).Milliseconds(),
		Error:      ae.Error(),
	})
}

// ToolsHandler GET /mcp/tools: katalog + status registrasi.
func ToolsHandler(w http.ResponseWriter, r *http.Request) {
	defs, err := LoadToolDefs()
	if err != nil {
		http.Error(w, "tool catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"tools":      defs,
		"registered": List(),
	})
}
