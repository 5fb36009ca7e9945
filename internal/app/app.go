// internal/app/app.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"dca-oilgas/internal/config"
	"dca-oilgas/internal/dataset"
	hh "dca-oilgas/internal/handlers/http"
	mcphandlers "dca-oilgas/internal/handlers/mcp"
	"dca-oilgas/internal/mcp"
	"dca-oilgas/internal/mcp/llm"
	"dca-oilgas/internal/middleware"
	"dca-oilgas/internal/observability"
	mysqlrepo "dca-oilgas/internal/repositories/mysql"
	"dca-oilgas/internal/services"
	"dca-oilgas/internal/util"
	"dca-oilgas/pkg/db"
)

// App menampung router utama + dependency yang perlu ditutup saat shutdown.
type App struct {
	Router    *mux.Router
	Store     *dataset.Store
	Service   *services.ForecastService
	Metrics   *observability.Metrics
	DB        *sql.DB
	refresher *dataset.Refresher
}

// New membuat instance App + registrasi semua routes (HTTP & MCP).
// Dataset awal yang gagal dimuat tidak fatal: /readyz tetap 503 sampai ada snapshot.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	metrics := observability.NewMetrics("dca")
	store := dataset.NewStore(util.RealClock{}, metrics)

	// === init DB ===
	var (
		conn *sql.DB
		repo *mysqlrepo.ProductionRepo
	)
	if cfg.Dataset.Source == "db" || cfg.DB.Driver == "sqlite" || cfg.DB.Password != "" {
		var err error
		conn, err = db.Open(ctx, dbOptions(cfg))
		switch {
		case err != nil && cfg.Dataset.Source == "db":
			return nil, err
		case err != nil:
			log.Printf("[WARN] database unavailable, get_production disabled: %v", err)
		default:
			repo = &mysqlrepo.ProductionRepo{DB: conn}
			if cfg.DB.Driver == "sqlite" {
				if err := repo.EnsureSchema(ctx); err != nil {
					conn.Close()
					return nil, err
				}
			}
		}
	}

	var src dataset.Source
	switch {
	case cfg.Dataset.Source == "db" && repo != nil:
		src = repo
	case cfg.Dataset.CSV != "":
		src = dataset.FileSource{Path: cfg.Dataset.CSV, Encoding: cfg.Dataset.Encoding}
	default:
		log.Println("[WARN] DATASET_CSV empty; waiting for an admin upload")
	}

	var refresher *dataset.Refresher
	if src != nil {
		refresher = dataset.NewRefresher(store, src, cfg.Dataset.RefreshInterval)
		if err := refresher.Refresh(ctx); err != nil {
			log.Printf("[WARN] initial dataset load failed: %v", err)
		}
		if err := refresher.Start(); err != nil {
			if conn != nil {
				conn.Close()
			}
			return nil, err
		}
	}

	// LLM opsional: tanpa key, ringkasan & planner pakai jalur deterministik
	var client llm.Client
	if c, err := llm.New(llm.Options{APIKey: cfg.LLM.APIKey, BaseURL: cfg.LLM.APIBase, Model: cfg.LLM.Model}); err == nil {
		client = c
	} else if !errors.Is(err, llm.ErrNoAPIKey) {
		log.Printf("[WARN] init llm client: %v", err)
	}

	svc := services.NewForecastService(store, services.Defaults{
		B:                cfg.DCA.DefaultB,
		HorizonMonths:    cfg.DCA.DefaultHorizonMonths,
		MaxHorizonMonths: cfg.DCA.MaxHorizonMonths,
		ZeroRate:         cfg.ZeroRatePolicy(),
	}, metrics, client)

	// ---- MCP (Model Context Protocol) ----
	mcphandlers.SetForecastService(svc)
	mcphandlers.SetProductionRepo(repo)
	RegisterMCPTools()

	planner := mcp.ChainPlanner{mcp.KeywordPlanner{}}
	if client != nil {
		planner = mcp.ChainPlanner{mcp.LLMPlanner{Client: client}, mcp.KeywordPlanner{}}
	}

	auth := middleware.AdminAuth{User: cfg.Admin.User, PassHash: cfg.Admin.PassHash, Secret: cfg.Admin.JWTSecret}
	if !auth.Configured() {
		log.Println("[WARN] ADMIN_PASS_HASH/ADMIN_JWT_SECRET empty; admin routes reject every request")
	}

	r := mux.NewRouter()
	RegisterRoutes(r, Deps{
		API: &hh.API{
			Svc:      svc,
			Store:    store,
			Metrics:  metrics,
			Auth:     auth,
			Encoding: cfg.Dataset.Encoding,
		},
		MCP:    &mcp.Router{Planner: planner},
		APIKey: cfg.APIKey,
	})

	return &App{
		Router:    r,
		Store:     store,
		Service:   svc,
		Metrics:   metrics,
		DB:        conn,
		refresher: refresher,
	}, nil
}

// Close menghentikan scheduler refresh dan menutup koneksi DB.
func (a *App) Close() error {
	if a.refresher != nil {
		a.refresher.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Server membungkus router dengan timeout standar.
func (a *App) Server(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func dbOptions(cfg *config.Config) db.Options {
	return db.Options{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		Name:     cfg.DB.Name,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Path:     cfg.DB.Path,
		MaxOpen:  cfg.DB.MaxOpen,
		MaxIdle:  cfg.DB.MaxIdle,
	}
}

// ----------------- MCP Wiring -----------------

// RegisterMCPTools mendaftarkan semua tool MCP ke registry.
func RegisterMCPTools() {
	mcp.Register("forecast_decline", http.HandlerFunc(mcphandlers.ForecastDeclineHandler))
	mcp.Register("list_well_options", http.HandlerFunc(mcphandlers.ListWellOptionsHandler))
	mcp.Register("summarize_forecast", http.HandlerFunc(mcphandlers.SummarizeForecastHandler))
	mcp.Register("get_production", http.HandlerFunc(mcphandlers.GetProductionHandler))
}
