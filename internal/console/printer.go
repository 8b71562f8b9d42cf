// Package console renders run results and prompts on the terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/internal/report"
)

// Printer writes colored run summaries. Colors are dropped when out is not a terminal.
type Printer struct {
	out     io.Writer
	heading lipgloss.Style
	passed  lipgloss.Style
	failed  lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a new Printer
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		passed:  r.NewStyle().Foreground(lipgloss.Color("#3FB950")),
		failed:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#E3B341")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// Line styles one validation result line by its leading severity
func (p *Printer) Line(line string) string {
	switch {
	case strings.HasPrefix(line, "PASSED"):
		return p.passed.Render(line)
	case strings.HasPrefix(line, models.SeverityFailure):
		return p.failed.Render(line)
	case strings.HasPrefix(line, models.SeverityWarning):
		return p.warning.Render(line)
	default:
		return line
	}
}

// Validation prints the files with findings, or every file when all is set
func (p *Printer) Validation(r *report.ValidationReport, all bool) {
	for _, file := range r.Files {
		if !all && !file.Failed() {
			continue
		}
		fmt.Fprintln(p.out, p.heading.Render("Evaluating "+file.File+"..."))
		for _, o := range file.Outcomes {
			if o.Passed && !all {
				continue
			}
			for _, line := range report.OutcomeLines(o) {
				fmt.Fprintln(p.out, p.Line(line))
			}
		}
	}
	p.missing(r.Missing)
}

// Report prints the aggregation warnings and missing names of a report run
func (p *Printer) Report(r *models.Report) {
	for _, w := range r.Warnings {
		fmt.Fprintln(p.out, p.warning.Render(models.SeverityWarning+": "+w))
	}
	p.missing(r.Missing)
}

// Saved prints where an output file was written
func (p *Printer) Saved(path string) {
	fmt.Fprintln(p.out, p.muted.Render("Saved "+path))
}

// Runs prints a run history listing, newest first
func (p *Printer) Runs(runs []*models.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.out, p.muted.Render("No runs recorded"))
		return
	}
	for _, run := range runs {
		p.run(run)
	}
}

// RunDetail prints one recorded run with its findings and missing names
func (p *Printer) RunDetail(run *models.Run, findings []*models.RunFinding, missing []string) {
	p.run(run)
	for _, f := range findings {
		line := f.Kind.Severity() + ": " + string(f.Kind)
		if f.Person != "" {
			line += ", " + f.Person
		}
		line += ", " + f.Detail
		fmt.Fprintln(p.out, p.Line(line))
	}
	p.missing(missing)
}

func (p *Printer) run(run *models.Run) {
	fmt.Fprintf(p.out, "%s  %-11s  week %s  files %d (skipped %d)  findings %d  missing %d\n",
		run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		run.Kind,
		run.WeekBeginning.Format("2006-01-02"),
		run.FilesScanned,
		run.FilesSkipped,
		run.FindingCount,
		run.MissingCount)
	fmt.Fprintln(p.out, p.muted.Render("  "+run.ID+"  "+run.OutputPath))
}

func (p *Printer) missing(names []string) {
	fmt.Fprintln(p.out, p.heading.Render("Reports missing:"))
	if len(names) == 0 {
		fmt.Fprintln(p.out, p.muted.Render("  none"))
		return
	}
	for _, name := range names {
		fmt.Fprintln(p.out, p.warning.Render("  "+name))
	}
}
