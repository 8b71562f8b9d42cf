package models

import "time"

// GroupBy selects the report variant
type GroupBy string

// Report variant constants
const (
	GroupByProgramManager GroupBy = "pm"
	GroupByDiscipline     GroupBy = "discipline"
)

// AggregatedReportRow is a forecast entry enriched with its grouping labels
type AggregatedReportRow struct {
	ForecastEntry
	ProgramManager string `json:"program_manager" yaml:"program_manager"`
	Description    string `json:"description" yaml:"description"`
	Group          string `json:"group" yaml:"group"`
}

// ReportBlock is one contract (PM variant) or person (discipline variant)
// with its week 1 rows above its week 2 rows. Label is the program manager
// or the discipline; Description is only set on contract blocks.
type ReportBlock struct {
	Key         string                `json:"key" yaml:"key"`
	Label       string                `json:"label" yaml:"label"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Week1       []AggregatedReportRow `json:"week1" yaml:"week1"`
	Week2       []AggregatedReportRow `json:"week2" yaml:"week2"`
}

// ReportSection groups blocks under one program manager or discipline
type ReportSection struct {
	Label  string        `json:"label" yaml:"label"`
	Blocks []ReportBlock `json:"blocks" yaml:"blocks"`
}

// Report is the fully grouped and ordered aggregation result
type Report struct {
	Variant       GroupBy         `json:"variant" yaml:"variant"`
	WeekBeginning time.Time       `json:"week_beginning" yaml:"week_beginning"`
	Sections      []ReportSection `json:"sections" yaml:"sections"`
	Reported      []string        `json:"reported" yaml:"reported"`
	Missing       []string        `json:"missing" yaml:"missing"`
	Warnings      []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Rows flattens the report into its ordered row sequence
func (r *Report) Rows() []AggregatedReportRow {
	var rows []AggregatedReportRow
	for _, section := range r.Sections {
		for _, block := range section.Blocks {
			rows = append(rows, block.Week1...)
			rows = append(rows, block.Week2...)
		}
	}
	return rows
}
