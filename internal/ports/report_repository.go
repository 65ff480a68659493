package ports

import (
	"context"
	"errors"
	"time"
)

var ErrReportNotFound = errors.New("report not found")

// StoredReport is a persisted mission report document.
type StoredReport struct {
	RunID     string
	MissionID string
	CreatedAt time.Time
	// Body is the JSON encoded report.
	Body []byte
}

// Port: a boundary for persisting mission reports.
type ReportRepository interface {
	SaveReport(ctx context.Context, r StoredReport) error
	// GetReport returns ErrReportNotFound for unknown run ids.
	GetReport(ctx context.Context, runID string) (StoredReport, error)
}
