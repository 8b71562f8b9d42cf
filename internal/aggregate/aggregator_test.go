package aggregate

import (
	"testing"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/internal/roster"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var monday = time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC)

func forecastFor(name string, entries ...models.ForecastEntry) *models.PersonForecast {
	return &models.PersonForecast{
		SourceFile: name + ".xlsm",
		Header:     models.PersonForecastHeader{Name: name, ForecastDate: monday, ScheduleType: models.Schedule40},
		Entries:    entries,
	}
}

func newAggregator() *Aggregator {
	contracts := roster.NewContractList([]models.ContractRecord{
		{ContractID: "CN1", ProgramManager: "Dana", Description: "Radar"},
		{ContractID: "CN3", ProgramManager: "Eli", Description: "Sonar"},
		{ContractID: "CN4", ProgramManager: "Dana", Description: "Lidar"},
	}, []string{"Eli", "Dana"})
	team := roster.NewTeamRoster([]models.TeamMember{
		{Name: "Alice Smith", Group: "SWE", GroupList: "SE"},
		{Name: "Bob Lee", Group: "SE", GroupList: "SWE"},
		{Name: "Carol King", Group: "SWE"},
	})
	return NewAggregator(contracts, team, nil, zap.NewNop())
}

func blockKeys(s models.ReportSection) []string {
	var keys []string
	for _, b := range s.Blocks {
		keys = append(keys, b.Key)
	}
	return keys
}

func sectionLabels(r *models.Report) []string {
	var labels []string
	for _, s := range r.Sections {
		labels = append(labels, s.Label)
	}
	return labels
}

func TestAggregator_CleanRunReportsMissingMember(t *testing.T) {
	contracts := roster.NewContractList([]models.ContractRecord{{ContractID: "CN1", ProgramManager: "Dana"}}, nil)
	team := roster.NewTeamRosterFromNames("Alice Smith", "Bob Lee")
	a := NewAggregator(contracts, team, nil, zap.NewNop())

	alice := forecastFor("Alice Smith",
		row("Alice Smith", models.Week1, "CN1", 8, 8, 8, 8, 8),
		row("Alice Smith", models.Week2, "CN1", 8, 8, 8, 8, 8),
	)

	report, err := a.Build([]*models.PersonForecast{alice}, models.GroupByProgramManager, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, monday, report.WeekBeginning)
	assert.Equal(t, []string{"Alice Smith"}, report.Reported)
	assert.Equal(t, []string{"Bob Lee"}, report.Missing)
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Dana", report.Sections[0].Label)
	assert.Len(t, report.Rows(), 2)
}

func TestAggregator_ProgramManagerLayout(t *testing.T) {
	forecasts := []*models.PersonForecast{
		forecastFor("Bob Lee",
			row("Bob Lee", models.Week1, "CN4", 4),
			row("Bob Lee", models.Week1, "CN1", 4),
			row("Bob Lee", models.Week1, "PTO", 8),
			row("Bob Lee", models.Week2, "CN1", 8),
		),
		forecastFor("Alice Smith",
			row("Alice Smith", models.Week1, "CN1", 8),
			row("Alice Smith", models.Week1, "CN9", 1),
			row("Alice Smith", models.Week1, "CN3"),
			row("Alice Smith", models.Week2, "CN1", 8),
			row("Alice Smith", models.Week2, "", 2),
		),
	}

	report, err := newAggregator().Build(forecasts, models.GroupByProgramManager, monday)

	require.NoError(t, err)
	// CN3 has no hours at all so Eli has no section
	assert.Equal(t, []string{"Dana", "none"}, sectionLabels(report))
	assert.Equal(t, []string{"CN1", "CN4"}, blockKeys(report.Sections[0]))
	assert.Equal(t, []string{"CN9", "PTO", "none"}, blockKeys(report.Sections[1]))

	cn1 := report.Sections[0].Blocks[0]
	assert.Equal(t, "Dana", cn1.Label)
	assert.Equal(t, "Radar", cn1.Description)
	var names []string
	for _, r := range append(cn1.Week1, cn1.Week2...) {
		names = append(names, r.PersonName)
		assert.Equal(t, "Dana", r.ProgramManager)
	}
	assert.Equal(t, []string{"Alice Smith", "Bob Lee", "Alice Smith", "Bob Lee"}, names)

	assert.Equal(t, []string{`contract "CN9" was referenced by Alice Smith, but not found in the contract list`}, report.Warnings)
	assert.Equal(t, []string{"Carol King"}, report.Missing)
}

func TestAggregator_DisciplineLayout(t *testing.T) {
	unallocatedZero := row("Bob Lee", models.Week1, UnallocatedTime, 0)
	unallocatedZero.RollupHours = models.Num(0)
	unallocated := row("Bob Lee", models.Week2, UnallocatedTime, 2)
	unallocated.RollupHours = models.Num(2)

	forecasts := []*models.PersonForecast{
		forecastFor("Bob Lee",
			row("Bob Lee", models.Week1, "CN1", 4),
			unallocatedZero,
			row("Bob Lee", models.Week2, "CN1", 4),
			unallocated,
		),
		forecastFor("Carol King",
			row("Carol King", models.Week1, "CN3", 4),
			row("Carol King", models.Week2, "CN3", 4),
		),
		forecastFor("Alice Smith",
			row("Alice Smith", models.Week1, "CN1", 8),
			row("Alice Smith", models.Week2, "CN1", 8),
		),
		forecastFor("Zed Unknown",
			row("Zed Unknown", models.Week1, "CN1", 8),
		),
	}

	report, err := newAggregator().Build(forecasts, models.GroupByDiscipline, monday)

	require.NoError(t, err)
	assert.Equal(t, []string{"SE", "SWE", "none"}, sectionLabels(report))
	assert.Equal(t, []string{"Bob Lee"}, blockKeys(report.Sections[0]))
	assert.Equal(t, []string{"Alice Smith", "Carol King"}, blockKeys(report.Sections[1]))
	assert.Equal(t, []string{"Zed Unknown"}, blockKeys(report.Sections[2]))

	bob := report.Sections[0].Blocks[0]
	assert.Equal(t, "SE", bob.Label)
	want := []string{"CN1"}
	var got []string
	for _, r := range bob.Week1 {
		got = append(got, r.ContractID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("week 1 contracts (-want +got):\n%s", diff)
	}
	require.Len(t, bob.Week2, 2)
	assert.Equal(t, UnallocatedTime, bob.Week2[1].ContractID)
	assert.Empty(t, report.Missing)
}

func TestAggregator_Errors(t *testing.T) {
	a := newAggregator()

	_, err := a.Build(nil, models.GroupBy("contract"), monday)
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = a.Build(nil, models.GroupByProgramManager, time.Time{})
	assert.ErrorIs(t, err, ErrNoWeekBeginning)

	report, err := a.Build(nil, models.GroupByDiscipline, monday)
	require.NoError(t, err)
	assert.Empty(t, report.Sections)
	assert.Equal(t, []string{"Alice Smith", "Bob Lee", "Carol King"}, report.Missing)
}
