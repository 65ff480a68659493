package main

import (
	"errors"
	"log"
	"log/slog"
	"mission-feasibility-service/internal/adapters/repositories"
	"mission-feasibility-service/internal/config"
	"mission-feasibility-service/internal/platform/db"
	"mission-feasibility-service/internal/platform/obs"
	"os"

	"github.com/joho/godotenv"
)

// dbtool creates the mission report schema in the Postgres database named by
// DATABASE_URL. The SQLite store used without DATABASE_URL initializes itself.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	lg, err := obs.NewLogger(config.Get("LOG_LEVEL", "info"), "")
	if err != nil {
		log.Fatal(err)
	}

	if err := run(lg, config.Get("DATABASE_URL", "")); err != nil {
		lg.Error("schema initialization failed", "err", err)
		os.Exit(1)
	}
}

var errMissingURL = errors.New("DATABASE_URL is required")

func run(lg *slog.Logger, databaseURL string) error {
	if databaseURL == "" {
		return errMissingURL
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	lg.Info("initializing report schema")
	if err := repositories.InitPostgresSchema(conn); err != nil {
		return err
	}
	lg.Info("schema ready")
	return nil
}
