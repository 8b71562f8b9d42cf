package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Validation report formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// RuleReadable is the outcome recorded for a workbook that could not be extracted
const RuleReadable = "Readable Sheet"

const timestampFormat = "2006-01-02--15-04-05"

// FileResult is the validation outcome of one forecast workbook
type FileResult struct {
	File     string               `yaml:"file"`
	Person   string               `yaml:"person,omitempty"`
	Outcomes []models.RuleOutcome `yaml:"outcomes"`
}

// Failed reports whether any rule of the file failed or warned
func (r FileResult) Failed() bool {
	for _, o := range r.Outcomes {
		if !o.Passed {
			return true
		}
	}
	return false
}

// ValidationReport is everything one validation run reports
type ValidationReport struct {
	GeneratedAt   time.Time    `yaml:"generated_at"`
	WeekBeginning time.Time    `yaml:"week_beginning"`
	Files         []FileResult `yaml:"files"`
	Missing       []string     `yaml:"missing"`
}

// Findings returns every finding of the run in file order
func (r *ValidationReport) Findings() []models.ValidationFinding {
	var out []models.ValidationFinding
	for _, f := range r.Files {
		for _, o := range f.Outcomes {
			out = append(out, o.Issues...)
		}
	}
	return out
}

// OutcomeLines formats one rule outcome as report lines
func OutcomeLines(o models.RuleOutcome) []string {
	if o.Passed {
		return []string{"PASSED: " + o.Rule}
	}
	if len(o.Issues) == 0 {
		return []string{fmt.Sprintf("%s: %s", models.SeverityFailure, o.Rule)}
	}
	lines := make([]string, 0, len(o.Issues))
	for _, issue := range o.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s, %s", issue.Kind.Severity(), o.Rule, issue.Detail))
	}
	return lines
}

// ValidationWriter writes validation reports as text or YAML
type ValidationWriter struct {
	all    bool
	logger *zap.Logger
}

// NewValidationWriter creates a new ValidationWriter. With all set, passing
// rules and clean files are written as well as failures.
func NewValidationWriter(all bool, logger *zap.Logger) *ValidationWriter {
	return &ValidationWriter{
		all:    all,
		logger: logger,
	}
}

// Write renders the report in the given format
func (w *ValidationWriter) Write(out io.Writer, r *ValidationReport, format string) error {
	switch format {
	case FormatText, "":
		return w.WriteText(out, r)
	case FormatYAML:
		return w.WriteYAML(out, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteText renders the plain text report
func (w *ValidationWriter) WriteText(out io.Writer, r *ValidationReport) error {
	var b strings.Builder
	b.WriteString("Time Forecast Data Validation Report\n")
	fmt.Fprintf(&b, "GENERATED: %s\n", r.GeneratedAt.Format(timestampFormat))
	fmt.Fprintf(&b, "For week beginning: %s\n", r.WeekBeginning.Format(dateFormat))

	for _, file := range r.Files {
		if !w.all && !file.Failed() {
			continue
		}
		fmt.Fprintf(&b, "\nEvaluating %s...\n", file.File)
		for _, o := range file.Outcomes {
			if o.Passed && !w.all {
				continue
			}
			for _, line := range OutcomeLines(o) {
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}

	b.WriteString("\nReports missing:\n")
	for _, name := range r.Missing {
		b.WriteString(name)
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("failed to write validation report: %w", err)
	}
	return nil
}

// WriteYAML renders the report as a YAML document. Without all, passing
// outcomes and clean files are left out.
func (w *ValidationWriter) WriteYAML(out io.Writer, r *ValidationReport) error {
	doc := *r
	if !w.all {
		doc.Files = nil
		for _, file := range r.Files {
			if !file.Failed() {
				continue
			}
			kept := FileResult{File: file.File, Person: file.Person}
			for _, o := range file.Outcomes {
				if !o.Passed {
					kept.Outcomes = append(kept.Outcomes, o)
				}
			}
			doc.Files = append(doc.Files, kept)
		}
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode validation report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode validation report: %w", err)
	}
	w.logger.Debug("Validation report encoded", zap.Int("files", len(doc.Files)))
	return nil
}

// ValidationFileName returns the report file name for a run started at ts
func ValidationFileName(ts time.Time, format string) string {
	ext := ".txt"
	if format == FormatYAML {
		ext = ".yaml"
	}
	return "validation_report_" + ts.Format(timestampFormat) + ext
}

// ReportFileName returns the workbook file name of a report variant
func ReportFileName(variant models.GroupBy, weekBeginning time.Time) string {
	prefix := "PM_Report_for_"
	if variant == models.GroupByDiscipline {
		prefix = "Team_Report_for_"
	}
	return prefix + weekBeginning.Format(dateFormat) + ".xlsx"
}
