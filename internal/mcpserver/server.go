// internal/mcpserver/server.go
// Server MCP stdio (modelcontextprotocol/go-sdk) untuk klien MCP desktop/IDE.
// Tool sama dengan registry HTTP, tapi input/output bertipe.

package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dca-oilgas/internal/services"
	"dca-oilgas/internal/util"
)

const (
	serverName  = "dca-oilgas"
	callTimeout = 10 * time.Second
)

// New membuat server MCP dengan tool forecast_decline dan list_well_options.
func New(svc *services.ForecastService, version string) *mcp.Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcp.AddTool(server, ForecastDeclineTool(), ForecastDeclineHandler(svc))
	mcp.AddTool(server, ListWellOptionsTool(), ListWellOptionsHandler(svc))
	return server
}

// Run melayani stdin/stdout sampai ctx selesai atau klien menutup koneksi.
func Run(ctx context.Context, svc *services.ForecastService, version string) error {
	util.LogJSON(util.LogEntry{Event: "mcp.stdio.start", Fields: map[string]any{"version": version}})
	return New(svc, version).Run(ctx, &mcp.StdioTransport{})
}
