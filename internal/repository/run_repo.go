package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/pkg/database"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunRepository stores run summaries, their findings and missing names
type RunRepository struct {
	db     *database.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *database.DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Record stores a run with its findings and missing names in one transaction.
// Empty run IDs and start times are filled in.
func (r *RunRepository) Record(ctx context.Context, run *models.Run, findings []models.ValidationFinding, missing []string) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = r.now()
	}
	run.FindingCount = len(findings)
	run.MissingCount = len(missing)

	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := r.createRun(ctx, tx, run); err != nil {
			return err
		}
		for _, f := range findings {
			if err := r.createFinding(ctx, tx, run.ID, f); err != nil {
				return err
			}
		}
		for i, name := range missing {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO run_missing (run_id, position, name) VALUES (?, ?, ?)",
				run.ID, i, name,
			); err != nil {
				return fmt.Errorf("failed to record missing name: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to record run", zap.String("run_id", run.ID), zap.Error(err))
		return err
	}

	r.logger.Debug("Run recorded",
		zap.String("run_id", run.ID),
		zap.String("kind", string(run.Kind)),
		zap.Int("findings", run.FindingCount),
		zap.Int("missing", run.MissingCount))
	return nil
}

func (r *RunRepository) createRun(ctx context.Context, tx *sql.Tx, run *models.Run) error {
	query := `
		INSERT INTO runs (
			id, kind, week_beginning, source_dir, output_path,
			files_scanned, files_skipped, finding_count, missing_count, started_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		run.ID,
		run.Kind,
		run.WeekBeginning,
		run.SourceDir,
		run.OutputPath,
		run.FilesScanned,
		run.FilesSkipped,
		run.FindingCount,
		run.MissingCount,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (r *RunRepository) createFinding(ctx context.Context, tx *sql.Tx, runID string, f models.ValidationFinding) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO run_findings (run_id, person, kind, detail, contracts) VALUES (?, ?, ?, ?, ?)",
		runID, f.Person, f.Kind, f.Detail, strings.Join(f.Contracts, ","),
	)
	if err != nil {
		return fmt.Errorf("failed to record finding: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first
func (r *RunRepository) Recent(ctx context.Context, limit int) ([]*models.Run, error) {
	query := `
		SELECT id, kind, week_beginning, source_dir, output_path,
			files_scanned, files_skipped, finding_count, missing_count, started_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list runs", zap.Error(err))
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetByID returns one run
func (r *RunRepository) GetByID(ctx context.Context, id string) (*models.Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, kind, week_beginning, source_dir, output_path,
			files_scanned, files_skipped, finding_count, missing_count, started_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// GetFindings returns the findings of a run in recorded order
func (r *RunRepository) GetFindings(ctx context.Context, runID string) ([]*models.RunFinding, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, person, kind, detail, contracts
		FROM run_findings
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get findings: %w", err)
	}
	defer rows.Close()

	var findings []*models.RunFinding
	for rows.Next() {
		var f models.RunFinding
		var contracts string
		if err := rows.Scan(&f.ID, &f.RunID, &f.Person, &f.Kind, &f.Detail, &contracts); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		if contracts != "" {
			f.Contracts = strings.Split(contracts, ",")
		}
		findings = append(findings, &f)
	}
	return findings, rows.Err()
}

// GetMissing returns the missing names of a run in roster order
func (r *RunRepository) GetMissing(ctx context.Context, runID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM run_missing WHERE run_id = ? ORDER BY position ASC", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get missing names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan missing name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*models.Run, error) {
	var run models.Run
	err := s.Scan(
		&run.ID,
		&run.Kind,
		&run.WeekBeginning,
		&run.SourceDir,
		&run.OutputPath,
		&run.FilesScanned,
		&run.FilesSkipped,
		&run.FindingCount,
		&run.MissingCount,
		&run.StartedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	return &run, nil
}
