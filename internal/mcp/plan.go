// internal/mcp/plan.go
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dca-oilgas/internal/mcp/llm"
)

type Route struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params,omitempty"` // payload JSON utk handler tool (RAW)
}

type Plan struct {
	Routes []Route `json:"routes"`
	Reason string  `json:"reason,omitempty"`
}

type Planner interface {
	Plan(ctx context.Context, question string) (Plan, error)
}

var ErrNoPlan = errors.New("no tool matches the question")

// ====== Keyword planner (deterministik, tanpa LLM) ======

var (
	reWell    = regexp.MustCompile(`(?i)\b(?:pozo|well|sumur)\s+([A-Za-z0-9][A-Za-z0-9_\-]*)`)
	reHorizon = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:meses|months|bulan)\b`)
	reFluid   = regexp.MustCompile(`(?i)\b(aceite|gas|agua|oil|water)\b`)
)

type KeywordPlanner struct{}

func (KeywordPlanner) Plan(_ context.Context, question string) (Plan, error) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return Plan{}, ErrNoPlan
	}

	var tool string
	switch {
	case containsAny(q, "resumen", "summary", "summarize", "ringkas"):
		tool = "summarize_forecast"
	case containsAny(q, "pronóstico", "pronostico", "proyección", "proyeccion", "forecast", "decline", "declinación", "declinacion", "projection", "prediksi"):
		tool = "forecast_decline"
	case containsAny(q, "opciones", "options", "list", "lista", "daftar", "which wells", "qué pozos", "que pozos"):
		tool = "list_well_options"
	case containsAny(q, "producción", "produccion", "production", "produksi", "histor"):
		tool = "get_production"
	default:
		return Plan{}, ErrNoPlan
	}

	params := map[string]any{}
	if m := reWell.FindStringSubmatch(question); m != nil {
		params["well"] = m[1]
	}
	if m := reFluid.FindStringSubmatch(question); m != nil && tool != "list_well_options" {
		params["fluid"] = strings.ToLower(m[1])
	}
	if m := reHorizon.FindStringSubmatch(question); m != nil && (tool == "forecast_decline" || tool == "summarize_forecast") {
		if n, err := strconv.Atoi(m[1]); err == nil {
			params["horizon_months"] = n
		}
	}
	raw, _ := json.Marshal(params)
	return Plan{Routes: []Route{{Tool: tool, Params: raw}}, Reason: "keyword"}, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ====== LLM planner (JSON mode) ======

type LLMPlanner struct {
	Client llm.Client
}

func (p LLMPlanner) Plan(ctx context.Context, question string) (Plan, error) {
	defs, err := LoadToolDefs()
	if err != nil {
		return Plan{}, err
	}
	registered := map[string]bool{}
	for _, n := range List() {
		registered[n] = true
	}

	var b strings.Builder
	b.WriteString("Question:\n")
	b.WriteString(question)
	b.WriteString("\n\nTools:\n")
	for _, d := range defs {
		if !registered[d.Name] {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n  input_schema: %s\n", d.Name, d.Description, string(d.InputSchema))
	}

	out, err := p.Client.AnswerJSON(ctx, b.String(), plannerSystem)
	if err != nil {
		return Plan{}, err
	}
	var plan Plan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		return Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	kept := plan.Routes[:0]
	for _, r := range plan.Routes {
		if registered[r.Tool] {
			kept = append(kept, r)
		}
	}
	plan.Routes = kept
	if len(plan.Routes) == 0 {
		return Plan{}, ErrNoPlan
	}
	return plan, nil
}

const plannerSystem = `You route questions about oil and gas well production to tools.
Reply with a JSON object: {"routes":[{"tool":"<name>","params":{...}}],"reason":"<short>"}.
Use only tools from the list and only parameters from their input_schema.
Leave out parameters the question does not mention.`

// ChainPlanner mencoba planner berurutan; yang pertama berhasil dipakai.
type ChainPlanner []Planner

func (c ChainPlanner) Plan(ctx context.Context, question string) (Plan, error) {
	err := ErrNoPlan
	for _, p := range c {
		if p == nil {
			continue
		}
		var plan Plan
		if plan, err = p.Plan(ctx, question); err == nil {
			return plan, nil
		}
	}
	return Plan{}, err
}
