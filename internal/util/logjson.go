// internal/util/logjson.go
// Structured log satu baris JSON per event (format sama dengan log mcp.route).

package util

import (
	"encoding/json"
	"log"
	"time"
)

type LogEntry struct {
	At         string         `json:"@t,omitempty"`         // RFC3339 timestamp
	Level      string         `json:"level,omitempty"`      // info|warn|error
	Event      string         `json:"event,omitempty"`      // dca.pipeline, dataset.load, ...
	RequestID  string         `json:"request_id,omitempty"` // X-Request-ID jika ada
	Fields     map[string]any `json:"fields,omitempty"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Error      string         `json:"error,omitempty"`
}

var logOutput = log.Println

func LogJSON(l LogEntry) {
	l.At = time.Now().Format(time.RFC3339Nano)
	if l.Level == "" {
		l.Level = "info"
	}
	b, _ := json.Marshal(l)
	logOutput(string(b))
}
