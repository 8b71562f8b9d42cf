package forecast

import (
	"fmt"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/xuri/excelize/v2"
)

// Field positions inside a week block column list
const (
	fieldContract       = 0
	fieldFirstDay       = 1
	fieldRollupHours    = fieldFirstDay + models.DaysPerWeek
	fieldRollupPercent  = fieldRollupHours + 1
	fieldFirstMilestone = fieldRollupPercent + 1

	// BlockWidth is the number of columns every week block must declare
	BlockWidth = fieldFirstMilestone + models.MilestoneSlots
)

// RowRange is an inclusive, 1-based range of sheet rows. A zero bound
// leaves that side open.
type RowRange struct {
	First int `mapstructure:"first"`
	Last  int `mapstructure:"last"`
}

// Contains reports whether row falls inside the range
func (r RowRange) Contains(row int) bool {
	if r.First > 0 && row < r.First {
		return false
	}
	if r.Last > 0 && row > r.Last {
		return false
	}
	return true
}

// BlockLayout locates one week's rows: the column of each field in order
// contract, Monday..Friday, rollup hours, rollup percent, milestones 1..3
type BlockLayout struct {
	Week    int      `mapstructure:"week"`
	Columns []string `mapstructure:"columns"`
}

// Layout is the declarative description of the biweekly forecast workbook
type Layout struct {
	Sheet         string        `mapstructure:"sheet"`
	NameCell      string        `mapstructure:"name_cell"`
	DateCell      string        `mapstructure:"date_cell"`
	ScheduleCell  string        `mapstructure:"schedule_cell"`
	AltHoursCells []string      `mapstructure:"alt_hours_cells"`
	Rows          RowRange      `mapstructure:"rows"`
	ContractRows  RowRange      `mapstructure:"contract_rows"` // window the contract rules look at
	Blocks        []BlockLayout `mapstructure:"blocks"`
}

// ScheduleFlag980 is the schedule cell value that selects the 9/80 schedule
const ScheduleFlag980 = 1

// DefaultLayout returns the layout of the standard forecast template
func DefaultLayout() Layout {
	return Layout{
		Sheet:         "Plan",
		NameCell:      "E6",
		DateCell:      "E7",
		ScheduleCell:  "A2",
		AltHoursCells: []string{"K39", "X39"},
		Rows:          RowRange{First: 18, Last: 38},
		ContractRows:  RowRange{First: 18, Last: 31},
		Blocks: []BlockLayout{
			{
				Week:    models.Week1,
				Columns: []string{"C", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P"},
			},
			{
				Week:    models.Week2,
				Columns: []string{"S", "T", "U", "V", "W", "X", "Y", "Z", "AA", "AB", "AC"},
			},
		},
	}
}

// Validate checks the descriptor before any workbook is parsed with it
func (l Layout) Validate() error {
	if l.Sheet == "" {
		return fmt.Errorf("%w: sheet name is required", ErrInvalidLayout)
	}
	for _, ref := range append([]string{l.NameCell, l.DateCell, l.ScheduleCell}, l.AltHoursCells...) {
		if _, _, err := excelize.CellNameToCoordinates(ref); err != nil {
			return fmt.Errorf("%w: bad cell reference %q", ErrInvalidLayout, ref)
		}
	}
	if l.Rows.First < 1 || l.Rows.Last < l.Rows.First {
		return fmt.Errorf("%w: bad row range %d-%d", ErrInvalidLayout, l.Rows.First, l.Rows.Last)
	}
	if l.ContractRows.First < 0 || l.ContractRows.Last < 0 ||
		(l.ContractRows.First > 0 && l.ContractRows.Last > 0 && l.ContractRows.Last < l.ContractRows.First) {
		return fmt.Errorf("%w: bad contract row range %d-%d",
			ErrInvalidLayout, l.ContractRows.First, l.ContractRows.Last)
	}
	if len(l.Blocks) == 0 {
		return fmt.Errorf("%w: no week blocks", ErrInvalidLayout)
	}
	seen := make(map[string]int)
	for _, b := range l.Blocks {
		if b.Week != models.Week1 && b.Week != models.Week2 {
			return fmt.Errorf("%w: week must be 1 or 2, got %d", ErrInvalidLayout, b.Week)
		}
		if len(b.Columns) != BlockWidth {
			return fmt.Errorf("%w: week %d declares %d columns, want %d",
				ErrInvalidLayout, b.Week, len(b.Columns), BlockWidth)
		}
		for _, col := range b.Columns {
			if _, err := excelize.ColumnNameToNumber(col); err != nil {
				return fmt.Errorf("%w: bad column %q", ErrInvalidLayout, col)
			}
			if other, dup := seen[col]; dup {
				return fmt.Errorf("%w: column %s used by weeks %d and %d", ErrInvalidLayout, col, other, b.Week)
			}
			seen[col] = b.Week
		}
	}
	return nil
}
