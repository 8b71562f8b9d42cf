package container

import (
	"context"
	"fmt"

	"github.com/garyjia/forecast-reporter/internal/application/port"
	"github.com/garyjia/forecast-reporter/internal/application/service"
	"github.com/garyjia/forecast-reporter/internal/config"
	"github.com/garyjia/forecast-reporter/internal/forecast"
	"github.com/garyjia/forecast-reporter/internal/repository"
	"github.com/garyjia/forecast-reporter/internal/roster"
	"github.com/garyjia/forecast-reporter/pkg/database"
	"go.uber.org/zap"
)

// HistoryBundle holds the run history database and its repository
type HistoryBundle struct {
	DB   *database.DB
	Runs *repository.RunRepository
}

// PipelineBundle holds the components that read workbooks
type PipelineBundle struct {
	Loader    *roster.Loader
	Extractor *forecast.Extractor
	Collector *forecast.Collector
}

// ProvideHistory opens the run history database and applies pending migrations
func ProvideHistory(ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger) (*HistoryBundle, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := database.New(database.Config{Path: cfg.Path}, logger)
	if err != nil {
		return nil, err
	}

	if err := repository.Migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &HistoryBundle{
		DB:   db,
		Runs: repository.NewRunRepository(db, logger),
	}, nil
}

// ProvideForecastPipeline creates the roster loader and forecast collector
func ProvideForecastPipeline(cfg *config.Config, logger *zap.Logger) (*PipelineBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	extractor, err := forecast.NewExtractor(cfg.Forecast.Layout, logger)
	if err != nil {
		return nil, err
	}

	return &PipelineBundle{
		Loader:    roster.NewLoader(cfg.Roster.ContractSheet, cfg.Roster.TeamSheet, logger),
		Extractor: extractor,
		Collector: forecast.NewCollector(extractor, cfg.Forecast.Extensions, logger).WithWorkers(cfg.Forecast.Workers),
	}, nil
}

// ProvideForecastService wires the validation and report pipelines. history
// may be nil when run history is disabled.
func ProvideForecastService(cfg *config.Config, pipeline *PipelineBundle, history *HistoryBundle, logger *zap.Logger) service.ForecastService {
	var recorder port.RunRecorder
	if history != nil {
		recorder = history.Runs
	}

	return service.NewForecastService(
		pipeline.Loader,
		pipeline.Collector,
		recorder,
		service.Options{
			ContractsPath:     cfg.ContractsListFilepath,
			TeamPath:          cfg.TeamMembersListFilepath,
			OverheadContracts: cfg.OverheadContracts,
			ContractRows:      cfg.Forecast.Layout.ContractRows,
		},
		logger,
	)
}
