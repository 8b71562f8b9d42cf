// Package forecasttest writes forecast workbooks in the standard template
// layout for tests.
package forecasttest

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/garyjia/forecast-reporter/internal/forecast"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Row is one contract row of a week block. Nil values leave the cell blank.
type Row struct {
	Contract   string
	Days       [5]interface{}
	Hours      interface{}
	Percent    interface{}
	Milestones [3]string
}

// Sheet describes the content of one forecast workbook
type Sheet struct {
	Name      string
	Date      interface{} // time.Time or text; nil leaves the cell blank
	Schedule  interface{} // 1 selects 9/80
	AltHours  []interface{}
	Week1     []Row
	Week2     []Row
	SheetName string // defaults to the layout's sheet
}

// Hours builds a Days array from numbers
func Hours(mon, tue, wed, thu, fri float64) [5]interface{} {
	return [5]interface{}{mon, tue, wed, thu, fri}
}

// Date is a shorthand for a UTC calendar date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Write saves the sheet as dir/file and returns its path
func Write(t testing.TB, dir, file string, s Sheet) string {
	t.Helper()
	layout := forecast.DefaultLayout()

	f := excelize.NewFile()
	defer f.Close()

	sheet := s.SheetName
	if sheet == "" {
		sheet = layout.Sheet
	}
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	set := func(ref string, v interface{}) {
		if v == nil {
			return
		}
		require.NoError(t, f.SetCellValue(sheet, ref, v))
	}

	set(layout.NameCell, nilIfEmpty(s.Name))
	set(layout.DateCell, s.Date)
	set(layout.ScheduleCell, s.Schedule)
	for i, v := range s.AltHours {
		if i < len(layout.AltHoursCells) {
			set(layout.AltHoursCells[i], v)
		}
	}

	for _, block := range layout.Blocks {
		rows := s.Week1
		if block.Week == 2 {
			rows = s.Week2
		}
		for i, r := range rows {
			row := layout.Rows.First + i
			cols := block.Columns
			cell := func(field int) string { return fmt.Sprintf("%s%d", cols[field], row) }
			set(cell(0), nilIfEmpty(r.Contract))
			for d, v := range r.Days {
				set(cell(1+d), v)
			}
			set(cell(6), r.Hours)
			set(cell(7), r.Percent)
			for m, v := range r.Milestones {
				set(cell(8+m), nilIfEmpty(v))
			}
		}
	}

	path := filepath.Join(dir, file)
	require.NoError(t, f.SaveAs(path))
	return path
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
