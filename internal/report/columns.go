package report

import (
	"github.com/garyjia/forecast-reporter/internal/models"
)

// column kinds decide cell style and number format
type columnKind int

const (
	kindText columnKind = iota
	kindCentered
	kindHours
	kindPercent
	kindFill // long text kept inside its cell
)

type column struct {
	header string
	width  float64
	kind   columnKind
	value  func(r models.AggregatedReportRow) interface{}
}

const weekdayWidth = 5

var weekdayHeaders = [models.DaysPerWeek]string{"M", "T", "W", "R", "F"}

// pmColumns is the program manager report layout: Contract, Week, Name, M-F,
// Hours, %, Milestone 1-3
func pmColumns() []column {
	cols := []column{
		{header: "Contract", width: 11, kind: kindCentered},
		{header: "Week", width: 6, kind: kindCentered},
		{header: "Name", width: 19, kind: kindText, value: func(r models.AggregatedReportRow) interface{} { return r.PersonName }},
	}
	return append(cols, rollupColumns()...)
}

// teamColumns is the discipline report layout: Name, Week, Contract,
// Description, M-F, Hours, %, Milestone 1-3
func teamColumns() []column {
	cols := []column{
		{header: "Name", width: 19, kind: kindCentered},
		{header: "Week", width: 6, kind: kindCentered},
		{header: "Contract", width: 11, kind: kindText, value: func(r models.AggregatedReportRow) interface{} { return r.ContractID }},
		{header: "Description", width: 19, kind: kindFill, value: func(r models.AggregatedReportRow) interface{} { return r.Description }},
	}
	return append(cols, rollupColumns()...)
}

func rollupColumns() []column {
	var cols []column
	for d := 0; d < models.DaysPerWeek; d++ {
		d := d
		cols = append(cols, column{
			header: weekdayHeaders[d],
			width:  weekdayWidth,
			kind:   kindHours,
			value:  func(r models.AggregatedReportRow) interface{} { return quantity(r.DailyHours[d]) },
		})
	}
	cols = append(cols,
		column{header: "Hours", width: 6, kind: kindHours, value: func(r models.AggregatedReportRow) interface{} { return quantity(r.RollupHours) }},
		column{header: "%", width: weekdayWidth + .5, kind: kindPercent, value: func(r models.AggregatedReportRow) interface{} { return quantity(r.RollupPercent) }},
	)
	for m := 0; m < models.MilestoneSlots; m++ {
		m := m
		cols = append(cols, column{
			header: "Milestone " + string(rune('1'+m)),
			width:  13,
			kind:   kindText,
			value:  func(r models.AggregatedReportRow) interface{} { return r.Milestones[m] },
		})
	}
	return cols
}

// quantity returns nil for blank cells so they stay empty
func quantity(q models.Quantity) interface{} {
	if q.Blank() {
		return nil
	}
	return q.Value
}

func columnsFor(variant models.GroupBy) []column {
	if variant == models.GroupByDiscipline {
		return teamColumns()
	}
	return pmColumns()
}
