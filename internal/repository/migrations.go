package repository

import (
	"context"
	"embed"

	"github.com/garyjia/forecast-reporter/pkg/database"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate brings the run history schema up to date
func Migrate(ctx context.Context, db *database.DB, logger *zap.Logger) error {
	return database.NewMigrator(db, logger).Run(ctx, migrationFS, "migrations")
}
