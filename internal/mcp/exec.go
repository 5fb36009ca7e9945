// internal/mcp/exec.go
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ExecResult struct {
	Route  Route `json:"route"`
	Status int   `json:"status"`
	Data   any   `json:"data,omitempty"`
	Error  any   `json:"error,omitempty"`
}

// ExecuteRoutes menjalankan semua rute in-process secara berurutan.
func ExecuteRoutes(ctx context.Context, routes []Route) []ExecResult {
	out := make([]ExecResult, 0, len(routes))
	for _, r := range routes {
		out = append(out, executeRoute(ctx, r))
	}
	return out
}

func executeRoute(ctx context.Context, r Route) ExecResult {
	h, ok := Get(r.Tool)
	if !ok {
		return ExecResult{Route: r, Status: http.StatusNotFound, Error: "tool not found: " + r.Tool}
	}

	body := []byte("{}")
	if !isJSONNullOrEmpty(r.Params) {
		body = r.Params
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, "/mcp/internal/"+r.Tool, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := newMemRecorder()
	h.ServeHTTP(rr, req)

	var data any
	if len(rr.buf) > 0 {
		if err := json.Unmarshal(rr.buf, &data); err != nil {
			data = strings.TrimSpace(string(rr.buf))
		}
	}
	res := ExecResult{Route: r, Status: rr.status}
	if rr.status >= 200 && rr.status < 300 {
		res.Data = data
		return res
	}
	if data == nil || data == "" {
		data = fmt.Sprintf("status %d", rr.status)
	}
	res.Error = data
	return res
}

// ---- mini response recorder (in-memory) ----
type memRecorder struct {
	buf    []byte
	status int
	header http.Header
}

func newMemRecorder() *memRecorder         { return &memRecorder{header: http.Header{}, status: http.StatusOK} }
func (m *memRecorder) Header() http.Header { return m.header }
func (m *memRecorder) Write(b []byte) (int, error) {
	m.buf = append(m.buf, b...)
	return len(b), nil
}
func (m *memRecorder) WriteHeader(code int) { m.status = code }

// Util: cek apakah Params = null / {} / whitespace
func isJSONNullOrEmpty(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == "{}"
}
