package report

import (
	"bytes"
	"testing"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func validationReport() *ValidationReport {
	return &ValidationReport{
		GeneratedAt:   generated,
		WeekBeginning: monday,
		Files: []FileResult{
			{
				File:   "alice.xlsm",
				Person: "Alice Smith",
				Outcomes: []models.RuleOutcome{
					{Rule: "Name Validity", Passed: true},
					{Rule: "Date Correctness", Passed: true},
				},
			},
			{
				File:   "bob.xlsm",
				Person: "Bob Lee",
				Outcomes: []models.RuleOutcome{
					{Rule: "Name Validity", Passed: true},
					{Rule: "Week 1 == week 2 contracts", Issues: []models.ValidationFinding{
						{Person: "Bob Lee", Kind: models.FindingContractMismatchWeeks, Detail: "contract CN2 is in week 1 but missing from week 2", Contracts: []string{"CN2"}},
					}},
					{Rule: "Contract Validity", Issues: []models.ValidationFinding{
						{Person: "Bob Lee", Kind: models.FindingContractNotListed, Detail: "contracts included but not found in contract list: CN2", Contracts: []string{"CN2"}},
					}},
				},
			},
		},
		Missing: []string{"Carol King"},
	}
}

func TestValidationWriter_WriteText(t *testing.T) {
	t.Run("failures only", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, NewValidationWriter(false, zap.NewNop()).Write(&buf, validationReport(), FormatText))

		assert.Equal(t, `Time Forecast Data Validation Report
GENERATED: 2024-01-30--09-15-00
For week beginning: 2024-01-29

Evaluating bob.xlsm...
FAILED: Week 1 == week 2 contracts, contract CN2 is in week 1 but missing from week 2
WARNING: Contract Validity, contracts included but not found in contract list: CN2

Reports missing:
Carol King
`, buf.String())
	})

	t.Run("all outcomes", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, NewValidationWriter(true, zap.NewNop()).WriteText(&buf, validationReport()))

		out := buf.String()
		assert.Contains(t, out, "\nEvaluating alice.xlsm...\nPASSED: Name Validity\nPASSED: Date Correctness\n")
		assert.Contains(t, out, "\nEvaluating bob.xlsm...\nPASSED: Name Validity\nFAILED: Week 1")
	})
}

func TestValidationWriter_WriteYAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewValidationWriter(false, zap.NewNop()).Write(&buf, validationReport(), FormatYAML))

	var decoded ValidationReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "bob.xlsm", decoded.Files[0].File)
	require.Len(t, decoded.Files[0].Outcomes, 2)
	assert.Equal(t, models.FindingContractNotListed, decoded.Files[0].Outcomes[1].Issues[0].Kind)
	assert.Equal(t, []string{"Carol King"}, decoded.Missing)
	assert.True(t, decoded.WeekBeginning.Equal(monday))
}

func TestValidationWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer

	err := NewValidationWriter(false, zap.NewNop()).Write(&buf, validationReport(), "csv")

	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestValidationReport_Findings(t *testing.T) {
	findings := validationReport().Findings()

	require.Len(t, findings, 2)
	assert.Equal(t, models.FindingContractMismatchWeeks, findings[0].Kind)
}

func TestValidationFileName(t *testing.T) {
	assert.Equal(t, "validation_report_2024-01-30--09-15-00.txt", ValidationFileName(generated, FormatText))
	assert.Equal(t, "validation_report_2024-01-30--09-15-00.yaml", ValidationFileName(generated, FormatYAML))
}
