package models

// FindingKind identifies the rule that produced a validation finding
type FindingKind string

// Finding kind constants
const (
	FindingNameInvalid           FindingKind = "NameInvalid"
	FindingDateMismatch          FindingKind = "DateMismatch"
	FindingContractMismatchWeeks FindingKind = "ContractMismatchWeeks"
	FindingContractNotListed     FindingKind = "ContractNotListed"
	FindingNoContractsEntered    FindingKind = "NoContractsEntered"
	FindingAltHoursMissing       FindingKind = "AltHoursMissing"

	// FindingMalformedSheet records a workbook that could not be extracted
	FindingMalformedSheet FindingKind = "MalformedSheet"
)

// Severity constants
const (
	SeverityFailure = "FAILED"
	SeverityWarning = "WARNING"
)

// Severity returns the report severity of a finding kind
func (k FindingKind) Severity() string {
	switch k {
	case FindingContractNotListed, FindingNoContractsEntered:
		return SeverityWarning
	default:
		return SeverityFailure
	}
}

// ValidationFinding is one failed or warned rule for one person
type ValidationFinding struct {
	Person    string      `json:"person" yaml:"person"`
	Kind      FindingKind `json:"kind" yaml:"kind"`
	Detail    string      `json:"detail" yaml:"detail"`
	Contracts []string    `json:"contracts,omitempty" yaml:"contracts,omitempty"`
}

// RuleOutcome records whether a single rule passed for one person
type RuleOutcome struct {
	Rule   string              `json:"rule" yaml:"rule"`
	Passed bool                `json:"passed" yaml:"passed"`
	Issues []ValidationFinding `json:"issues,omitempty" yaml:"issues,omitempty"`
}
