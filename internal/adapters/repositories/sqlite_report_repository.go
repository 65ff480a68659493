package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mission-feasibility-service/internal/ports"
	"strings"
	"time"
)

// SQLite-backed implementation of the ReportRepository port.
type SqliteReportRepository struct{ DB *sql.DB }

func NewSqliteReportRepository(db *sql.DB) *SqliteReportRepository {
	return &SqliteReportRepository{DB: db}
}

func (s *SqliteReportRepository) SaveReport(ctx context.Context, r ports.StoredReport) error {
	if s.DB == nil {
		return errors.New("sqlite report repository: DB is nil")
	}
	if strings.TrimSpace(r.RunID) == "" {
		return errors.New("save report: run id must not be empty")
	}

	query := `
	INSERT INTO mission_reports (run_id, mission_id, created_at, body)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (run_id) DO UPDATE
	SET mission_id = excluded.mission_id,
		created_at = excluded.created_at,
		body = excluded.body;
	`
	created := r.CreatedAt.UTC().Format(time.RFC3339Nano)
	if _, err := s.DB.ExecContext(ctx, query, r.RunID, r.MissionID, created, string(r.Body)); err != nil {
		return fmt.Errorf("save report: insert run_id=%s: %w", r.RunID, err)
	}
	return nil
}

func (s *SqliteReportRepository) GetReport(ctx context.Context, runID string) (ports.StoredReport, error) {
	if s.DB == nil {
		return ports.StoredReport{}, errors.New("sqlite report repository: DB is nil")
	}

	query := `
	SELECT run_id, mission_id, created_at, body
	FROM mission_reports
	WHERE run_id = ?;
	`
	var r ports.StoredReport
	var created, body string
	err := s.DB.QueryRowContext(ctx, query, runID).Scan(&r.RunID, &r.MissionID, &created, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.StoredReport{}, fmt.Errorf("get report %q: %w", runID, ports.ErrReportNotFound)
	}
	if err != nil {
		return ports.StoredReport{}, fmt.Errorf("get report: query mission_reports table: %w", err)
	}

	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return ports.StoredReport{}, fmt.Errorf("get report: parse created_at %q: %w", created, err)
	}
	r.Body = []byte(body)
	return r, nil
}
