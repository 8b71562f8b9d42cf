package models

import (
	"math"
	"time"
)

// Schedule type constants
const (
	Schedule980 = "9/80"
	Schedule40  = "40"
)

// Week numbers of a biweekly forecast
const (
	Week1 = 1
	Week2 = 2
)

// DaysPerWeek is the number of working-day columns per week block
const DaysPerWeek = 5

// MilestoneSlots is the number of milestone columns per row
const MilestoneSlots = 3

// Quantity is a numeric cell that may be left blank on the source sheet
type Quantity struct {
	Value float64 `json:"value" yaml:"value"`
	Valid bool    `json:"valid" yaml:"valid"`
}

// Num returns a set quantity
func Num(v float64) Quantity {
	return Quantity{Value: v, Valid: true}
}

// Blank reports whether the quantity is unset or NaN
func (q Quantity) Blank() bool {
	return !q.Valid || math.IsNaN(q.Value)
}

// PersonForecastHeader holds the header fields of one forecast sheet
type PersonForecastHeader struct {
	Name           string    `json:"name" yaml:"name"`
	ForecastDate   time.Time `json:"forecast_date" yaml:"forecast_date"`
	ScheduleType   string    `json:"schedule_type" yaml:"schedule_type"` // 9/80 or 40
	AlternateHours int       `json:"alternate_hours" yaml:"alternate_hours"`
}

// ForecastEntry represents one (person, week, contract) row of a forecast sheet
type ForecastEntry struct {
	PersonName    string                 `json:"person_name" yaml:"person_name"`
	Week          int                    `json:"week" yaml:"week"`
	ContractID    string                 `json:"contract_id" yaml:"contract_id"`
	DailyHours    [DaysPerWeek]Quantity  `json:"daily_hours" yaml:"daily_hours"` // Mon-Fri
	RollupHours   Quantity               `json:"rollup_hours" yaml:"rollup_hours"`
	RollupPercent Quantity               `json:"rollup_percent" yaml:"rollup_percent"`
	Milestones    [MilestoneSlots]string `json:"milestones" yaml:"milestones"`
	SourceRow     int                    `json:"source_row" yaml:"source_row"` // 1-based sheet row, 0 when built in code
}

// HasHours reports whether any daily cell of the entry is filled in
func (e ForecastEntry) HasHours() bool {
	for _, h := range e.DailyHours {
		if !h.Blank() {
			return true
		}
	}
	return false
}

// PersonForecast is one extracted forecast workbook
type PersonForecast struct {
	SourceFile string               `json:"source_file" yaml:"source_file"`
	Header     PersonForecastHeader `json:"header" yaml:"header"`
	Entries    []ForecastEntry      `json:"entries" yaml:"entries"`
}

// ContractsForWeek returns the non-blank contract IDs of a week in sheet order.
// Entries read from a sheet are kept only when inWindow accepts their row;
// a nil inWindow keeps every row.
func (p *PersonForecast) ContractsForWeek(week int, inWindow func(row int) bool) []string {
	var ids []string
	for _, e := range p.Entries {
		if e.Week != week || e.ContractID == "" {
			continue
		}
		if e.SourceRow > 0 && inWindow != nil && !inWindow(e.SourceRow) {
			continue
		}
		ids = append(ids, e.ContractID)
	}
	return ids
}

// SameDay reports whether two timestamps fall on the same calendar date
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
