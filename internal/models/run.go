package models

import "time"

// RunKind identifies what a recorded run did
type RunKind string

// Run kind constants
const (
	RunKindValidate   RunKind = "VALIDATE"
	RunKindReportPM   RunKind = "REPORT_PM"
	RunKindReportTeam RunKind = "REPORT_TEAM"
)

// Run is the persisted summary of one CLI run
type Run struct {
	ID            string    `json:"id" yaml:"id"` // UUID
	Kind          RunKind   `json:"kind" yaml:"kind"`
	WeekBeginning time.Time `json:"week_beginning" yaml:"week_beginning"`
	SourceDir     string    `json:"source_dir" yaml:"source_dir"`
	OutputPath    string    `json:"output_path" yaml:"output_path"`
	FilesScanned  int       `json:"files_scanned" yaml:"files_scanned"`
	FilesSkipped  int       `json:"files_skipped" yaml:"files_skipped"`
	FindingCount  int       `json:"finding_count" yaml:"finding_count"`
	MissingCount  int       `json:"missing_count" yaml:"missing_count"`
	StartedAt     time.Time `json:"started_at" yaml:"started_at"`
}

// RunFinding is a validation finding stored against a run
type RunFinding struct {
	ID    int64  `json:"id" yaml:"id"`
	RunID string `json:"run_id" yaml:"run_id"`
	ValidationFinding
}
