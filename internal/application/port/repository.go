package port

import (
	"context"

	"github.com/garyjia/forecast-reporter/internal/models"
)

// RunRecorder persists run summaries
type RunRecorder interface {
	Record(ctx context.Context, run *models.Run, findings []models.ValidationFinding, missing []string) error
}

// RunHistory reads persisted run summaries
type RunHistory interface {
	Recent(ctx context.Context, limit int) ([]*models.Run, error)
	GetByID(ctx context.Context, id string) (*models.Run, error)
	GetFindings(ctx context.Context, runID string) ([]*models.RunFinding, error)
	GetMissing(ctx context.Context, runID string) ([]string, error)
}
