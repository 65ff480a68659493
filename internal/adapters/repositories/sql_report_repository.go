package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mission-feasibility-service/internal/ports"
	"strings"
)

// SQLReportRepository stores mission reports in Postgres.
type SQLReportRepository struct {
	DB *sql.DB
}

func NewSQLReportRepository(db *sql.DB) *SQLReportRepository {
	return &SQLReportRepository{DB: db}
}

func (s *SQLReportRepository) SaveReport(ctx context.Context, r ports.StoredReport) error {
	if s.DB == nil {
		return errors.New("report repository: db is nil")
	}
	if strings.TrimSpace(r.RunID) == "" {
		return errors.New("save report: run id must not be empty")
	}

	q := `
	INSERT INTO mission_reports (run_id, mission_id, created_at, body)
	VALUES ($1, $2, $3, $4::jsonb)
	ON CONFLICT (run_id) DO UPDATE
	SET mission_id = EXCLUDED.mission_id,
		created_at = EXCLUDED.created_at,
		body = EXCLUDED.body;
	`
	if _, err := s.DB.ExecContext(ctx, q, r.RunID, r.MissionID, r.CreatedAt.UTC(), string(r.Body)); err != nil {
		return fmt.Errorf("save report: insert run_id=%s: %w", r.RunID, err)
	}
	return nil
}

func (s *SQLReportRepository) GetReport(ctx context.Context, runID string) (ports.StoredReport, error) {
	if s.DB == nil {
		return ports.StoredReport{}, errors.New("report repository: db is nil")
	}

	q := `
	SELECT run_id, mission_id, created_at, body::text
	FROM mission_reports
	WHERE run_id = $1;
	`
	var r ports.StoredReport
	var body string
	err := s.DB.QueryRowContext(ctx, q, runID).Scan(&r.RunID, &r.MissionID, &r.CreatedAt, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.StoredReport{}, fmt.Errorf("get report %q: %w", runID, ports.ErrReportNotFound)
	}
	if err != nil {
		return ports.StoredReport{}, fmt.Errorf("get report: query mission_reports table: %w", err)
	}
	r.Body = []byte(body)
	return r, nil
}
