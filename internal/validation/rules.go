package validation

import (
	"sort"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/internal/roster"
)

// Rule names as printed in validation reports
const (
	RuleNameValidity     = "Name Validity"
	RuleDateCorrectness  = "Date Correctness"
	RuleContractPresence = "Contract Presence"
	RuleWeekConsistency  = "Week 1 == week 2 contracts"
	RuleContractValidity = "Contract Validity"
	RuleAltHours         = "9/80 Alt Hours"
)

// NameIsValid reports whether name is a substring of some roster name
func NameIsValid(name string, team *roster.TeamRoster) bool {
	return team.MatchName(name)
}

// DateIsCorrect reports calendar equality of the sheet date and the expected week beginning
func DateIsCorrect(expected, actual time.Time) bool {
	return models.SameDay(expected, actual)
}

// MissingFromWeek2 returns the sorted set of week 1 contracts absent from week 2.
// Contracts that only appear in week 2 are not reported.
func MissingFromWeek2(week1, week2 []string) []string {
	return difference(week1, func(id string) bool {
		for _, other := range week2 {
			if other == id {
				return true
			}
		}
		return false
	})
}

// UnlistedContracts returns the sorted set of contracts absent from the contract list
func UnlistedContracts(ids []string, contracts *roster.ContractList) []string {
	return difference(ids, contracts.Contains)
}

// AltHoursSatisfied reports whether the schedule's alternate hours requirement is met.
// Only the 9/80 schedule requires alternate hours.
func AltHoursSatisfied(header models.PersonForecastHeader) bool {
	if header.ScheduleType != models.Schedule980 {
		return true
	}
	return header.AlternateHours > 0
}

// difference returns the sorted distinct ids for which present is false
func difference(ids []string, present func(string) bool) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !present(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
