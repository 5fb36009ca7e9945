// cmd/mcp-server/main.go
// Server MCP stdio: forecast_decline & list_well_options atas dataset CSV/DB.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dca-oilgas/internal/app"
	"dca-oilgas/internal/config"
	"dca-oilgas/internal/mcpserver"
)

var BuildVersion = "dev"

func main() {
	// stdout dipakai protokol; semua log ke stderr
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}
	defer a.Close()

	if err := mcpserver.Run(ctx, a.Service, BuildVersion); err != nil && ctx.Err() == nil {
		log.Printf("mcp server: %v", err)
	}
}
