package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/internal/roster"
	"go.uber.org/zap"
)

// DefaultOverheadContracts are reported without a contract list entry and never warned about
var DefaultOverheadContracts = []string{"Sustaining", "ENG_OH", "IRC_OH", "STE_OH", "BP", "PTO", "HOLIDAY"}

// UnallocatedTime is the contract dropped from the team report when it carries zero hours
const UnallocatedTime = "Unallocated Time"

// Aggregator merges extracted forecasts with the roster and contract list
// into an ordered report
type Aggregator struct {
	contracts *roster.ContractList
	team      *roster.TeamRoster
	overhead  map[string]bool
	logger    *zap.Logger
}

// NewAggregator creates a new Aggregator. A nil overhead list selects DefaultOverheadContracts.
func NewAggregator(contracts *roster.ContractList, team *roster.TeamRoster, overhead []string, logger *zap.Logger) *Aggregator {
	if contracts == nil {
		contracts = roster.NewContractList(nil, nil)
	}
	if team == nil {
		team = roster.NewTeamRoster(nil)
	}
	if overhead == nil {
		overhead = DefaultOverheadContracts
	}
	set := make(map[string]bool, len(overhead))
	for _, id := range overhead {
		set[id] = true
	}
	return &Aggregator{
		contracts: contracts,
		team:      team,
		overhead:  set,
		logger:    logger,
	}
}

// Build aggregates forecasts into a report of the given variant. A zero
// weekBeginning is replaced by the most common forecast date.
func (a *Aggregator) Build(forecasts []*models.PersonForecast, variant models.GroupBy, weekBeginning time.Time) (*models.Report, error) {
	if variant != models.GroupByProgramManager && variant != models.GroupByDiscipline {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	if weekBeginning.IsZero() {
		week, ok := WeekBeginning(forecasts)
		if !ok {
			return nil, ErrNoWeekBeginning
		}
		weekBeginning = week
	}

	var entries []models.ForecastEntry
	for _, pf := range forecasts {
		entries = append(entries, pf.Entries...)
	}
	kept := FilterDegenerate(entries)
	a.logger.Debug("Filtered degenerate rows",
		zap.Int("entries", len(entries)),
		zap.Int("kept", len(kept)))

	rows, warnings := a.join(kept)

	report := &models.Report{
		Variant:       variant,
		WeekBeginning: weekBeginning,
		Warnings:      warnings,
	}

	switch variant {
	case models.GroupByProgramManager:
		report.Sections = a.byProgramManager(rows)
	case models.GroupByDiscipline:
		report.Sections = a.byDiscipline(dropUnallocated(rows))
	}

	report.Reported = ReportedNames(forecasts)
	report.Missing = MissingReports(a.team.Names(), report.Reported)

	a.logger.Info("Report aggregated",
		zap.String("variant", string(variant)),
		zap.String("week_beginning", weekBeginning.Format("2006-01-02")),
		zap.Int("sections", len(report.Sections)),
		zap.Int("rows", len(report.Rows())),
		zap.Int("reported", len(report.Reported)),
		zap.Int("missing", len(report.Missing)),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

// join attaches contract and roster labels. Unlisted non-overhead contracts
// are kept under program manager "none" and produce one warning per person.
func (a *Aggregator) join(entries []models.ForecastEntry) ([]models.AggregatedReportRow, []string) {
	rows := make([]models.AggregatedReportRow, 0, len(entries))
	var warnings []string
	warned := make(map[string]bool)

	for _, e := range entries {
		e.ContractID = contractKey(e)
		row := models.AggregatedReportRow{
			ForecastEntry:  e,
			ProgramManager: models.LabelNone,
			Group:          a.groupOf(e.PersonName),
		}

		if rec, ok := a.contracts.Lookup(e.ContractID); ok {
			row.Description = rec.Description
			if rec.ProgramManager != "" {
				row.ProgramManager = rec.ProgramManager
			}
		} else if e.ContractID != models.LabelNone && !a.overhead[e.ContractID] {
			key := e.ContractID + "\x00" + e.PersonName
			if !warned[key] {
				warned[key] = true
				msg := fmt.Sprintf("contract %q was referenced by %s, but not found in the contract list", e.ContractID, e.PersonName)
				warnings = append(warnings, msg)
				a.logger.Warn("Unlisted contract",
					zap.String("contract", e.ContractID),
					zap.String("person", e.PersonName))
			}
		}

		rows = append(rows, row)
	}
	return rows, warnings
}

// groupOf returns a person's roster group, matching exactly first and then
// ignoring case
func (a *Aggregator) groupOf(name string) string {
	if m, ok := a.team.Lookup(name); ok && m.Group != "" {
		return m.Group
	}
	for _, m := range a.team.Members() {
		if strings.EqualFold(m.Name, name) && m.Group != "" {
			return m.Group
		}
	}
	return models.LabelNone
}

func (a *Aggregator) byProgramManager(rows []models.AggregatedReportRow) []models.ReportSection {
	var present []string
	blocks := make(map[string]map[string]*models.ReportBlock)
	for _, r := range rows {
		byContract, ok := blocks[r.ProgramManager]
		if !ok {
			byContract = make(map[string]*models.ReportBlock)
			blocks[r.ProgramManager] = byContract
			present = append(present, r.ProgramManager)
		}
		b, ok := byContract[r.ContractID]
		if !ok {
			b = &models.ReportBlock{Key: r.ContractID, Label: r.ProgramManager, Description: r.Description}
			byContract[r.ContractID] = b
		}
		appendWeek(b, r)
	}

	var sections []models.ReportSection
	for _, mgr := range orderLabels(a.contracts.ManagerOrder(), present) {
		byContract := blocks[mgr]
		keys := make([]string, 0, len(byContract))
		for k := range byContract {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		section := models.ReportSection{Label: mgr}
		for _, k := range keys {
			b := byContract[k]
			sortByPerson(b.Week1)
			sortByPerson(b.Week2)
			section.Blocks = append(section.Blocks, *b)
		}
		sections = append(sections, section)
	}
	return sections
}

func (a *Aggregator) byDiscipline(rows []models.AggregatedReportRow) []models.ReportSection {
	var present []string
	blocks := make(map[string]map[string]*models.ReportBlock)
	for _, r := range rows {
		byPerson, ok := blocks[r.Group]
		if !ok {
			byPerson = make(map[string]*models.ReportBlock)
			blocks[r.Group] = byPerson
			present = append(present, r.Group)
		}
		b, ok := byPerson[r.PersonName]
		if !ok {
			b = &models.ReportBlock{Key: r.PersonName, Label: r.Group}
			byPerson[r.PersonName] = b
		}
		appendWeek(b, r)
	}

	var sections []models.ReportSection
	for _, group := range orderLabels(a.team.DisciplineOrder(), present) {
		byPerson := blocks[group]
		names := make([]string, 0, len(byPerson))
		for name := range byPerson {
			names = append(names, name)
		}
		sort.Strings(names)

		section := models.ReportSection{Label: group}
		for _, name := range names {
			section.Blocks = append(section.Blocks, *byPerson[name])
		}
		sections = append(sections, section)
	}
	return sections
}

// dropUnallocated removes "Unallocated Time" rows whose rollup hours are zero
func dropUnallocated(rows []models.AggregatedReportRow) []models.AggregatedReportRow {
	out := rows[:0:0]
	for _, r := range rows {
		if r.ContractID == UnallocatedTime && r.RollupHours.Valid && r.RollupHours.Value == 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func appendWeek(b *models.ReportBlock, r models.AggregatedReportRow) {
	if r.Week == models.Week1 {
		b.Week1 = append(b.Week1, r)
	} else {
		b.Week2 = append(b.Week2, r)
	}
}

func sortByPerson(rows []models.AggregatedReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PersonName < rows[j].PersonName
	})
}

// orderLabels returns the present labels in preferred order, then the
// unlisted ones in first-appearance order, with "none" last
func orderLabels(preferred, present []string) []string {
	have := make(map[string]bool, len(present))
	for _, p := range present {
		have[p] = true
	}

	placed := make(map[string]bool, len(present))
	ordered := make([]string, 0, len(present))
	for _, p := range preferred {
		if have[p] && !placed[p] && p != models.LabelNone {
			placed[p] = true
			ordered = append(ordered, p)
		}
	}
	for _, p := range present {
		if !placed[p] && p != models.LabelNone {
			placed[p] = true
			ordered = append(ordered, p)
		}
	}
	if have[models.LabelNone] {
		ordered = append(ordered, models.LabelNone)
	}
	return ordered
}
