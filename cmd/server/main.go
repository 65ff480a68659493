package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"mission-feasibility-service/internal/adapters/cache"
	"mission-feasibility-service/internal/adapters/refdata"
	"mission-feasibility-service/internal/adapters/repositories"
	"mission-feasibility-service/internal/api"
	"mission-feasibility-service/internal/config"
	"mission-feasibility-service/internal/platform/db"
	"mission-feasibility-service/internal/platform/obs"
	"mission-feasibility-service/internal/ports"
	"mission-feasibility-service/internal/scenario"
	"mission-feasibility-service/internal/services"
	"net/http"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It loads reference data, wires storage and cache adapters behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := obs.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(lg)

	if err := run(cfg, lg); err != nil {
		lg.Error("server stopped", "err", err)
		log.Fatal(err)
	}
}

func run(cfg config.Config, lg *slog.Logger) error {
	ref, err := refdata.LoadReference(cfg.DataDir)
	if err != nil {
		return err
	}
	lg.Info("reference data loaded",
		"dir", cfg.DataDir,
		"categories", len(ref.Aircraft),
		"locations", len(ref.Locations),
		"alternates", len(ref.Alternates.Global))

	resolver := scenario.NewResolver()
	if cfg.ScenarioFile != "" {
		if resolver, err = scenario.LoadFile(cfg.ScenarioFile); err != nil {
			return err
		}
	}

	conn, repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	var planCache ports.PlanCache = cache.NopPlanCache{}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedisPlanCacheFromURL(ctx, cfg.RedisURL, cfg.PlanCacheTTL)
		cancel()
		if err != nil {
			return err
		}
		defer rc.Close()
		planCache = rc
	}

	planner := services.NewPlanner(ref, resolver, services.EnumerateOptions{
		Workers:       cfg.Workers,
		TopK:          cfg.TopK,
		MaxDeliveries: cfg.MaxDeliveries,
	}, lg)

	router := api.NewRouter(api.Deps{
		Reference: ref,
		Scenarios: resolver,
		Planner:   planner,
		Repo:      repo,
		Cache:     planCache,
		Logger:    lg,
	})

	// Write timeout covers exhaustive enumeration at the delivery cap.
	lg.Info("server listening", "addr", ":"+cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}

// openRepository uses Postgres when DATABASE_URL is set and a local SQLite
// file otherwise. The SQLite schema is created on startup; Postgres is
// initialized by dbtool.
func openRepository(cfg config.Config) (*sql.DB, ports.ReportRepository, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return conn, repositories.NewSQLReportRepository(conn), nil
	}

	conn, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}
	return conn, repositories.NewSqliteReportRepository(conn), nil
}
