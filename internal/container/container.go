// Package container provides dependency injection and lifecycle management
// for the forecast reporter.
package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/garyjia/forecast-reporter/internal/application/port"
	"github.com/garyjia/forecast-reporter/internal/application/service"
	"github.com/garyjia/forecast-reporter/internal/config"
	"go.uber.org/zap"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config *config.Config
	logger *zap.Logger

	history    *HistoryBundle
	historyErr error
	pipeline   *PipelineBundle
	service    service.ForecastService

	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components:
// 1. Run history database (when enabled; a failure only disables recording)
// 2. Roster loader and forecast collector
// 3. Forecast service
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	if c.config.History.Enabled {
		history, err := ProvideHistory(ctx, c.config.History, c.logger)
		if err != nil {
			c.logger.Warn("Run history unavailable, runs will not be recorded",
				zap.String("path", c.config.History.Path),
				zap.Error(err))
			c.historyErr = fmt.Errorf("failed to initialize run history: %w", err)
		} else {
			c.history = history
			c.logger.Debug("Run history initialized", zap.String("path", c.config.History.Path))
		}
	}

	pipeline, err := ProvideForecastPipeline(c.config, c.logger)
	if err != nil {
		c.closeHistory()
		return fmt.Errorf("failed to initialize forecast pipeline: %w", err)
	}
	c.pipeline = pipeline

	c.service = ProvideForecastService(c.config, c.pipeline, c.history, c.logger)

	c.ready.Store(true)
	c.logger.Debug("Container started")
	return nil
}

// Close releases all components in reverse order
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	err := c.closeHistory()
	c.closed.Store(true)
	c.ready.Store(false)

	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}

func (c *Container) closeHistory() error {
	if c.history == nil {
		return nil
	}
	err := c.history.DB.Close()
	if err != nil {
		c.logger.Error("Failed to close history database", zap.Error(err))
	}
	c.history = nil
	return err
}

// Ready returns true when all components are initialized
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Config returns the application configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the application logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Service returns the forecast service
func (c *Container) Service() service.ForecastService {
	return c.service
}

// HistoryErr returns why run history could not be opened, or nil
func (c *Container) HistoryErr() error {
	return c.historyErr
}

// History returns the run history reader, or nil when history is disabled
// or could not be opened
func (c *Container) History() port.RunHistory {
	if c.history == nil {
		return nil
	}
	return c.history.Runs
}
