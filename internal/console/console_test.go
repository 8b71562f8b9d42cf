package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	t.Run("returns the answer", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("  /data/in  \n"), &out)

		answer, err := p.Ask("Forecast directory", "/default")

		require.NoError(t, err)
		assert.Equal(t, "/data/in", answer)
		assert.Equal(t, "Forecast directory [/default]: ", out.String())
	})

	t.Run("empty answer selects the default", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("\n"), &bytes.Buffer{})

		answer, err := p.Ask("Report directory", "/out")

		require.NoError(t, err)
		assert.Equal(t, "/out", answer)
	})

	t.Run("last line without newline is accepted", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("yes"), &bytes.Buffer{})

		answer, err := p.Ask("Continue", "")

		require.NoError(t, err)
		assert.Equal(t, "yes", answer)
	})

	t.Run("end of input aborts", func(t *testing.T) {
		p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

		_, err := p.Ask("Continue", "x")

		assert.ErrorIs(t, err, ErrAborted)
	})
}

func TestPrompter_AskDate(t *testing.T) {
	t.Run("re-prompts until the date parses", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("2024-01-29\n1/29/24\n01/29/2024\n"), &out)

		date, err := p.AskDate("Week beginning", time.Time{})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC), date)
		assert.Equal(t, 2, strings.Count(out.String(), "use MM/DD/YYYY"))
	})

	t.Run("empty answer selects the default", func(t *testing.T) {
		def := time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC)
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("\n"), &out)

		date, err := p.AskDate("Week beginning", def)

		require.NoError(t, err)
		assert.Equal(t, def, date)
		assert.Contains(t, out.String(), "[02/12/2024]")
	})

	t.Run("end of input aborts", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("bad\n"), &bytes.Buffer{})

		_, err := p.AskDate("Week beginning", time.Time{})

		assert.ErrorIs(t, err, ErrAborted)
	})
}

func TestPrinter(t *testing.T) {
	rep := &report.ValidationReport{
		Files: []report.FileResult{
			{File: "alice.xlsm", Outcomes: []models.RuleOutcome{{Rule: "Name Validity", Passed: true}}},
			{File: "bob.xlsm", Outcomes: []models.RuleOutcome{
				{Rule: "Name Validity", Passed: true},
				{Rule: "Date Correctness", Issues: []models.ValidationFinding{
					{Person: "Bob", Kind: models.FindingDateMismatch, Detail: "2024-01-22 != 2024-01-29 (actual)"},
				}},
			}},
		},
		Missing: []string{"Carol"},
	}

	t.Run("validation prints failing files only", func(t *testing.T) {
		var out bytes.Buffer
		NewPrinter(&out).Validation(rep, false)

		text := out.String()
		assert.NotContains(t, text, "alice.xlsm")
		assert.Contains(t, text, "Evaluating bob.xlsm...")
		assert.Contains(t, text, "FAILED: Date Correctness, 2024-01-22 != 2024-01-29 (actual)")
		assert.NotContains(t, text, "PASSED")
		assert.Contains(t, text, "Reports missing:\n  Carol\n")
	})

	t.Run("validation with all prints passing lines", func(t *testing.T) {
		var out bytes.Buffer
		NewPrinter(&out).Validation(rep, true)

		assert.Contains(t, out.String(), "Evaluating alice.xlsm...\nPASSED: Name Validity\n")
	})

	t.Run("report prints warnings", func(t *testing.T) {
		var out bytes.Buffer
		NewPrinter(&out).Report(&models.Report{Warnings: []string{"contract \"X9\" was referenced by Bob, but not found in the contract list"}})

		assert.Contains(t, out.String(), "WARNING: contract \"X9\"")
		assert.Contains(t, out.String(), "  none")
	})

	t.Run("runs", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrinter(&out)

		p.Runs(nil)
		assert.Equal(t, "No runs recorded\n", out.String())

		out.Reset()
		p.Runs([]*models.Run{{
			ID:            "run-1",
			Kind:          models.RunKindValidate,
			WeekBeginning: time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC),
			OutputPath:    "/out/validation.txt",
			FilesScanned:  3,
			FindingCount:  2,
			StartedAt:     time.Now(),
		}})
		assert.Contains(t, out.String(), "VALIDATE")
		assert.Contains(t, out.String(), "week 2024-01-29  files 3 (skipped 0)  findings 2  missing 0")
		assert.Contains(t, out.String(), "run-1  /out/validation.txt")
	})

	t.Run("run detail", func(t *testing.T) {
		var out bytes.Buffer
		run := &models.Run{ID: "run-2", Kind: models.RunKindValidate, FindingCount: 2, MissingCount: 1}
		findings := []*models.RunFinding{
			{RunID: "run-2", ValidationFinding: models.ValidationFinding{
				Person: "Bob", Kind: models.FindingDateMismatch, Detail: "2024-01-22 != 2024-01-29 (actual)"}},
			{RunID: "run-2", ValidationFinding: models.ValidationFinding{
				Kind: models.FindingMalformedSheet, Detail: "malformed forecast sheet"}},
		}

		NewPrinter(&out).RunDetail(run, findings, []string{"Carol"})

		text := out.String()
		assert.Contains(t, text, "findings 2  missing 1")
		assert.Contains(t, text, "FAILED: DateMismatch, Bob, 2024-01-22 != 2024-01-29 (actual)\n")
		assert.Contains(t, text, "FAILED: MalformedSheet, malformed forecast sheet\n")
		assert.Contains(t, text, "Reports missing:\n  Carol\n")
	})

	t.Run("line styles keep the text", func(t *testing.T) {
		p := NewPrinter(&bytes.Buffer{})
		assert.Equal(t, "plain", p.Line("plain"))
		assert.Contains(t, p.Line("WARNING: x"), "WARNING: x")
	})
}
