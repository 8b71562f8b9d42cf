package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/garyjia/forecast-reporter/internal/forecast"
	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/internal/roster"
)

const dateFormat = "2006-01-02"

// Options tunes which rows the contract rules consider
type Options struct {
	// ContractRows limits the contract rules to sheet rows inside the range.
	// The zero value considers every row.
	ContractRows forecast.RowRange
}

// Validator checks extracted forecasts against the roster and contract list.
// It has no side effects; callers decide how findings are reported.
type Validator struct {
	team      *roster.TeamRoster
	contracts *roster.ContractList
	opts      Options
}

// NewValidator creates a new Validator
func NewValidator(team *roster.TeamRoster, contracts *roster.ContractList, opts Options) *Validator {
	if team == nil {
		team = roster.NewTeamRoster(nil)
	}
	if contracts == nil {
		contracts = roster.NewContractList(nil, nil)
	}
	return &Validator{
		team:      team,
		contracts: contracts,
		opts:      opts,
	}
}

// Validate returns the findings for one forecast in rule order
func (v *Validator) Validate(pf *models.PersonForecast, weekBeginning time.Time) []models.ValidationFinding {
	var findings []models.ValidationFinding
	for _, outcome := range v.Evaluate(pf, weekBeginning) {
		findings = append(findings, outcome.Issues...)
	}
	return findings
}

// Evaluate runs every applicable rule and records pass or fail for each.
// A person with no week 1 contracts skips the two contract rules.
func (v *Validator) Evaluate(pf *models.PersonForecast, weekBeginning time.Time) []models.RuleOutcome {
	h := pf.Header
	outcomes := []models.RuleOutcome{
		v.checkName(h),
		v.checkDate(h, weekBeginning),
	}

	week1 := pf.ContractsForWeek(models.Week1, v.opts.ContractRows.Contains)
	week2 := pf.ContractsForWeek(models.Week2, v.opts.ContractRows.Contains)

	if len(week1) == 0 {
		outcomes = append(outcomes, fail(RuleContractPresence, models.ValidationFinding{
			Person: h.Name,
			Kind:   models.FindingNoContractsEntered,
			Detail: fmt.Sprintf("%s did not enter any contracts", h.Name),
		}))
	} else {
		outcomes = append(outcomes,
			models.RuleOutcome{Rule: RuleContractPresence, Passed: true},
			v.checkWeekConsistency(h, week1, week2),
			v.checkContractValidity(h, week1),
		)
	}

	if h.ScheduleType == models.Schedule980 {
		outcomes = append(outcomes, v.checkAltHours(h))
	}

	return outcomes
}

func (v *Validator) checkName(h models.PersonForecastHeader) models.RuleOutcome {
	if NameIsValid(h.Name, v.team) {
		return pass(RuleNameValidity)
	}
	return fail(RuleNameValidity, models.ValidationFinding{
		Person: h.Name,
		Kind:   models.FindingNameInvalid,
		Detail: fmt.Sprintf("%s is not in team member list", h.Name),
	})
}

func (v *Validator) checkDate(h models.PersonForecastHeader, weekBeginning time.Time) models.RuleOutcome {
	if DateIsCorrect(weekBeginning, h.ForecastDate) {
		return pass(RuleDateCorrectness)
	}
	return fail(RuleDateCorrectness, models.ValidationFinding{
		Person: h.Name,
		Kind:   models.FindingDateMismatch,
		Detail: fmt.Sprintf("%s != %s (actual)", h.ForecastDate.Format(dateFormat), weekBeginning.Format(dateFormat)),
	})
}

func (v *Validator) checkWeekConsistency(h models.PersonForecastHeader, week1, week2 []string) models.RuleOutcome {
	missing := MissingFromWeek2(week1, week2)
	if len(missing) == 0 {
		return pass(RuleWeekConsistency)
	}
	issues := make([]models.ValidationFinding, 0, len(missing))
	for _, id := range missing {
		issues = append(issues, models.ValidationFinding{
			Person:    h.Name,
			Kind:      models.FindingContractMismatchWeeks,
			Detail:    fmt.Sprintf("contract %s is in week 1 but missing from week 2", id),
			Contracts: []string{id},
		})
	}
	return fail(RuleWeekConsistency, issues...)
}

func (v *Validator) checkContractValidity(h models.PersonForecastHeader, week1 []string) models.RuleOutcome {
	unlisted := UnlistedContracts(week1, v.contracts)
	if len(unlisted) == 0 {
		return pass(RuleContractValidity)
	}
	return fail(RuleContractValidity, models.ValidationFinding{
		Person:    h.Name,
		Kind:      models.FindingContractNotListed,
		Detail:    "contracts included but not found in contract list: " + strings.Join(unlisted, ", "),
		Contracts: unlisted,
	})
}

func (v *Validator) checkAltHours(h models.PersonForecastHeader) models.RuleOutcome {
	if AltHoursSatisfied(h) {
		return pass(RuleAltHours)
	}
	return fail(RuleAltHours, models.ValidationFinding{
		Person: h.Name,
		Kind:   models.FindingAltHoursMissing,
		Detail: fmt.Sprintf("%s works 9/80 but entered 0 alt hours", h.Name),
	})
}

func pass(rule string) models.RuleOutcome {
	return models.RuleOutcome{Rule: rule, Passed: true}
}

func fail(rule string, issues ...models.ValidationFinding) models.RuleOutcome {
	return models.RuleOutcome{Rule: rule, Passed: false, Issues: issues}
}
