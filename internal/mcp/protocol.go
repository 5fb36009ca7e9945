// mcp/protocol.go
// Definisi struktur request /mcp/route

package mcp

import "encoding/json"

// ToolRequest: salah satu dari tool (+payload), routes/plan, atau question.
type ToolRequest struct {
	Tool     string          `json:"tool,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Question string          `json:"question,omitempty"`
	Routes   []Route         `json:"routes,omitempty"`
	Plan     *Plan           `json:"plan,omitempty"`
}

type ToolResponse struct {
	Mode           string       `json:"mode"`
	DecisionBy     string       `json:"decision_by"`
	RoutesExecuted int          `json:"routes_executed"`
	Items          []ExecResult `json:"items"`
}
