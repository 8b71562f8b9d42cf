package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
)

// contractKey is the grouping key of an entry's contract
func contractKey(e models.ForecastEntry) string {
	if e.ContractID == "" {
		return models.LabelNone
	}
	return e.ContractID
}

// FilterDegenerate drops every (person, contract) group, spanning both weeks,
// whose daily hours are all blank. Groups with any filled cell are kept whole.
func FilterDegenerate(entries []models.ForecastEntry) []models.ForecastEntry {
	type key struct{ person, contract string }
	active := make(map[key]bool)
	for _, e := range entries {
		k := key{e.PersonName, contractKey(e)}
		active[k] = active[k] || e.HasHours()
	}

	out := make([]models.ForecastEntry, 0, len(entries))
	for _, e := range entries {
		if active[key{e.PersonName, contractKey(e)}] {
			out = append(out, e)
		}
	}
	return out
}

// WeekBeginning returns the most common forecast date. Ties go to the latest date.
func WeekBeginning(forecasts []*models.PersonForecast) (time.Time, bool) {
	counts := make(map[time.Time]int)
	for _, pf := range forecasts {
		y, m, d := pf.Header.ForecastDate.Date()
		counts[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)]++
	}

	var best time.Time
	bestCount := 0
	for date, n := range counts {
		if n > bestCount || (n == bestCount && date.After(best)) {
			best, bestCount = date, n
		}
	}
	return best, bestCount > 0
}

// ReportedNames returns the sorted distinct names of submitted forecasts
func ReportedNames(forecasts []*models.PersonForecast) []string {
	seen := make(map[string]bool)
	var names []string
	for _, pf := range forecasts {
		name := pf.Header.Name
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MissingReports returns, in roster order, every roster name with no
// submitted forecast. Names are compared case-insensitively.
func MissingReports(rosterNames, submitted []string) []string {
	have := make(map[string]bool, len(submitted))
	for _, name := range submitted {
		have[strings.ToLower(name)] = true
	}

	var missing []string
	for _, name := range rosterNames {
		if !have[strings.ToLower(name)] {
			missing = append(missing, name)
		}
	}
	return missing
}
