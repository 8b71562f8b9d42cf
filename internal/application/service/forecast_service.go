package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/garyjia/forecast-reporter/internal/aggregate"
	"github.com/garyjia/forecast-reporter/internal/application/port"
	"github.com/garyjia/forecast-reporter/internal/forecast"
	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/internal/report"
	"github.com/garyjia/forecast-reporter/internal/roster"
	"github.com/garyjia/forecast-reporter/internal/storage"
	"github.com/garyjia/forecast-reporter/internal/validation"
	"go.uber.org/zap"
)

// Options holds the run settings that do not change between requests
type Options struct {
	ContractsPath     string
	TeamPath          string
	OverheadContracts []string
	ContractRows      forecast.RowRange
}

// ValidateRequest describes one validation run
type ValidateRequest struct {
	Dir           string
	OutDir        string
	WeekBeginning time.Time
	All           bool
	Format        string
}

// ValidateResult is the outcome of a validation run
type ValidateResult struct {
	Report     *report.ValidationReport
	Scan       *forecast.ScanResult
	OutputPath string
	RunID      string
}

// ReportRequest describes one report run. A zero WeekBeginning is inferred
// from the forecasts.
type ReportRequest struct {
	Dir           string
	OutDir        string
	Variant       models.GroupBy
	WeekBeginning time.Time
}

// ReportResult is the outcome of a report run
type ReportResult struct {
	Report     *models.Report
	Scan       *forecast.ScanResult
	OutputPath string
	RunID      string
}

// ForecastService runs the validation and report pipelines
type ForecastService interface {
	Validate(ctx context.Context, req ValidateRequest) (*ValidateResult, error)
	Report(ctx context.Context, req ReportRequest) (*ReportResult, error)
}

type forecastServiceImpl struct {
	rosters  port.RosterLoader
	scanner  port.ForecastScanner
	recorder port.RunRecorder
	outputs  func(dir string) port.OutputStore
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

// NewForecastService creates a new ForecastService. recorder may be nil
// when run history is disabled.
func NewForecastService(
	rosters port.RosterLoader,
	scanner port.ForecastScanner,
	recorder port.RunRecorder,
	opts Options,
	logger *zap.Logger,
) ForecastService {
	return &forecastServiceImpl{
		rosters:  rosters,
		scanner:  scanner,
		recorder: recorder,
		outputs: func(dir string) port.OutputStore {
			return storage.NewOutputDir(dir, logger)
		},
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Validate checks every forecast in req.Dir and writes the validation report
func (s *forecastServiceImpl) Validate(ctx context.Context, req ValidateRequest) (*ValidateResult, error) {
	if req.WeekBeginning.IsZero() {
		return nil, ErrWeekRequired
	}
	if req.Format == "" {
		req.Format = report.FormatText
	}

	contracts, team := s.loadRosters()

	scan, err := s.scanner.Scan(req.Dir)
	if err != nil {
		return nil, err
	}

	v := validation.NewValidator(team, contracts, validation.Options{ContractRows: s.opts.ContractRows})
	rep := &report.ValidationReport{
		GeneratedAt:   s.now(),
		WeekBeginning: req.WeekBeginning,
	}
	for _, pf := range scan.Forecasts {
		rep.Files = append(rep.Files, report.FileResult{
			File:     filepath.Base(pf.SourceFile),
			Person:   pf.Header.Name,
			Outcomes: v.Evaluate(pf, req.WeekBeginning),
		})
	}
	for _, skipped := range scan.Skipped {
		rep.Files = append(rep.Files, report.FileResult{
			File: filepath.Base(skipped.Path),
			Outcomes: []models.RuleOutcome{{
				Rule: report.RuleReadable,
				Issues: []models.ValidationFinding{{
					Kind:   models.FindingMalformedSheet,
					Detail: skipped.Err.Error(),
				}},
			}},
		})
	}
	sort.SliceStable(rep.Files, func(i, j int) bool {
		return rep.Files[i].File < rep.Files[j].File
	})
	rep.Missing = aggregate.MissingReports(team.Names(), aggregate.ReportedNames(scan.Forecasts))

	var buf bytes.Buffer
	if err := report.NewValidationWriter(req.All, s.logger).Write(&buf, rep, req.Format); err != nil {
		return nil, err
	}
	path, err := s.outputs(req.OutDir).SaveFile(report.ValidationFileName(rep.GeneratedAt, req.Format), buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to save validation report: %w", err)
	}

	findings := rep.Findings()
	s.logger.Info("Validation complete",
		zap.Int("files", len(rep.Files)),
		zap.Int("findings", len(findings)),
		zap.Int("missing", len(rep.Missing)),
		zap.String("output", path))

	runID := s.record(ctx, &models.Run{
		Kind:          models.RunKindValidate,
		WeekBeginning: req.WeekBeginning,
		SourceDir:     req.Dir,
		OutputPath:    path,
		FilesScanned:  scan.Scanned,
		FilesSkipped:  len(scan.Skipped),
		StartedAt:     rep.GeneratedAt,
	}, findings, rep.Missing)

	return &ValidateResult{
		Report:     rep,
		Scan:       scan,
		OutputPath: path,
		RunID:      runID,
	}, nil
}

// Report aggregates every forecast in req.Dir and writes the report workbook
func (s *forecastServiceImpl) Report(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	started := s.now()
	contracts, team := s.loadRosters()

	scan, err := s.scanner.Scan(req.Dir)
	if err != nil {
		return nil, err
	}

	agg := aggregate.NewAggregator(contracts, team, s.opts.OverheadContracts, s.logger)
	rep, err := agg.Build(scan.Forecasts, req.Variant, req.WeekBeginning)
	if err != nil {
		return nil, err
	}

	out := s.outputs(req.OutDir)
	if err := out.Ensure(); err != nil {
		return nil, err
	}
	path, err := out.Path(report.ReportFileName(rep.Variant, rep.WeekBeginning))
	if err != nil {
		return nil, err
	}
	if err := report.NewWriter(s.logger).Save(rep, path); err != nil {
		return nil, err
	}

	kind := models.RunKindReportPM
	if rep.Variant == models.GroupByDiscipline {
		kind = models.RunKindReportTeam
	}
	runID := s.record(ctx, &models.Run{
		Kind:          kind,
		WeekBeginning: rep.WeekBeginning,
		SourceDir:     req.Dir,
		OutputPath:    path,
		FilesScanned:  scan.Scanned,
		FilesSkipped:  len(scan.Skipped),
		StartedAt:     started,
	}, nil, rep.Missing)

	return &ReportResult{
		Report:     rep,
		Scan:       scan,
		OutputPath: path,
		RunID:      runID,
	}, nil
}

// loadRosters reads both lists. An unreadable list is logged and replaced
// by an empty one so the run can continue.
func (s *forecastServiceImpl) loadRosters() (*roster.ContractList, *roster.TeamRoster) {
	contracts, err := s.rosters.LoadContracts(s.opts.ContractsPath)
	if err != nil {
		s.logger.Error("Contract list unavailable, continuing with an empty list",
			zap.String("path", s.opts.ContractsPath),
			zap.Error(err))
		contracts = roster.NewContractList(nil, nil)
	}

	team, err := s.rosters.LoadTeam(s.opts.TeamPath)
	if err != nil {
		s.logger.Error("Team member list unavailable, continuing with an empty list",
			zap.String("path", s.opts.TeamPath),
			zap.Error(err))
		team = roster.NewTeamRoster(nil)
	}
	return contracts, team
}

// record stores the run summary. Failures are logged and never fail the run.
func (s *forecastServiceImpl) record(ctx context.Context, run *models.Run, findings []models.ValidationFinding, missing []string) string {
	if s.recorder == nil {
		return ""
	}
	if err := s.recorder.Record(ctx, run, findings, missing); err != nil {
		s.logger.Warn("Failed to record run history", zap.Error(err))
		return ""
	}
	return run.ID
}
