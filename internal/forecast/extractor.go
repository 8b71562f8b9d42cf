package forecast

import (
	"fmt"
	"os"
	"strings"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Extractor turns one forecast workbook into a header and its entries
type Extractor struct {
	layout Layout
	logger *zap.Logger
}

// NewExtractor creates a new Extractor for the given layout
func NewExtractor(layout Layout, logger *zap.Logger) (*Extractor, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		layout: layout,
		logger: logger,
	}, nil
}

// ExtractFile opens and extracts one forecast workbook
func (e *Extractor) ExtractFile(path string) (*models.PersonForecast, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat forecast: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, malformed(path, "unreadable workbook", err)
	}
	defer f.Close()

	return e.Extract(f, path)
}

// Extract parses an open workbook. source is used for error messages and
// recorded on the result.
func (e *Extractor) Extract(f *excelize.File, source string) (*models.PersonForecast, error) {
	if idx, err := f.GetSheetIndex(e.layout.Sheet); err != nil || idx < 0 {
		return nil, malformed(source, fmt.Sprintf("sheet %q does not exist", e.layout.Sheet), err)
	}

	header, err := e.readHeader(f, source)
	if err != nil {
		return nil, err
	}

	result := &models.PersonForecast{
		SourceFile: source,
		Header:     *header,
	}
	for _, block := range e.layout.Blocks {
		entries, err := e.readBlock(f, source, header.Name, block)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, entries...)
	}

	e.logger.Debug("Forecast extracted",
		zap.String("file", source),
		zap.String("name", header.Name),
		zap.Time("forecast_date", header.ForecastDate),
		zap.String("schedule", header.ScheduleType),
		zap.Int("entries", len(result.Entries)))

	return result, nil
}

// readHeader reads the fixed header cells
func (e *Extractor) readHeader(f *excelize.File, source string) (*models.PersonForecastHeader, error) {
	sheet := e.layout.Sheet

	name, err := f.GetCellValue(sheet, e.layout.NameCell)
	if err != nil {
		return nil, malformed(source, "name cell unreadable", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, malformed(source, fmt.Sprintf("name cell %s is empty", e.layout.NameCell), nil)
	}

	rawDate, err := e.raw(f, e.layout.DateCell)
	if err != nil {
		return nil, malformed(source, "forecast date cell unreadable", err)
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return nil, malformed(source, fmt.Sprintf("forecast date cell %s", e.layout.DateCell), err)
	}

	schedule := models.Schedule40
	rawSchedule, err := e.raw(f, e.layout.ScheduleCell)
	if err != nil {
		return nil, malformed(source, "schedule cell unreadable", err)
	}
	if q, ok := parseQuantity(rawSchedule); ok && !q.Blank() && q.Value == ScheduleFlag980 {
		schedule = models.Schedule980
	}

	altHours := 0
	for _, ref := range e.layout.AltHoursCells {
		raw, err := e.raw(f, ref)
		if err != nil {
			return nil, malformed(source, "alternate hours cell unreadable", err)
		}
		q, ok := parseQuantity(raw)
		if !ok {
			e.logger.Warn("Non-numeric alternate hours treated as zero",
				zap.String("file", source),
				zap.String("cell", ref),
				zap.String("value", raw))
		}
		altHours += wholeHours(q)
	}

	return &models.PersonForecastHeader{
		Name:           name,
		ForecastDate:   date,
		ScheduleType:   schedule,
		AlternateHours: altHours,
	}, nil
}

// readBlock parses every row of one week block into entries, dropping rows
// that are empty across all fields
func (e *Extractor) readBlock(f *excelize.File, source, person string, block BlockLayout) ([]models.ForecastEntry, error) {
	var entries []models.ForecastEntry

	for row := e.layout.Rows.First; row <= e.layout.Rows.Last; row++ {
		values := make([]string, BlockWidth)
		empty := true
		for i, col := range block.Columns {
			ref := fmt.Sprintf("%s%d", col, row)
			var v string
			var err error
			if isTextField(i) {
				v, err = f.GetCellValue(e.layout.Sheet, ref)
			} else {
				v, err = e.raw(f, ref)
			}
			if err != nil {
				return nil, malformed(source, fmt.Sprintf("cell %s unreadable", ref), err)
			}
			values[i] = strings.TrimSpace(v)
			if values[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		entry := models.ForecastEntry{
			PersonName: person,
			Week:       block.Week,
			ContractID: values[fieldContract],
			SourceRow:  row,
		}
		for d := 0; d < models.DaysPerWeek; d++ {
			entry.DailyHours[d] = e.quantity(source, block.Columns[fieldFirstDay+d], row, values[fieldFirstDay+d])
		}
		entry.RollupHours = e.quantity(source, block.Columns[fieldRollupHours], row, values[fieldRollupHours])
		if !entry.RollupHours.Blank() && entry.RollupHours.Value < 0 {
			e.logger.Warn("Negative rollup hours treated as blank",
				zap.String("file", source),
				zap.Int("row", row))
			entry.RollupHours = models.Quantity{}
		}
		entry.RollupPercent = e.quantity(source, block.Columns[fieldRollupPercent], row, values[fieldRollupPercent])
		for m := 0; m < models.MilestoneSlots; m++ {
			entry.Milestones[m] = values[fieldFirstMilestone+m]
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// quantity parses a numeric field and logs text that is not a number
func (e *Extractor) quantity(source, col string, row int, raw string) models.Quantity {
	q, ok := parseQuantity(raw)
	if !ok {
		e.logger.Warn("Non-numeric value in hours column treated as blank",
			zap.String("file", source),
			zap.String("cell", fmt.Sprintf("%s%d", col, row)),
			zap.String("value", raw))
	}
	return q
}

// raw reads the unformatted cell value so numbers are not rounded by display formats
func (e *Extractor) raw(f *excelize.File, ref string) (string, error) {
	return f.GetCellValue(e.layout.Sheet, ref, excelize.Options{RawCellValue: true})
}

func isTextField(field int) bool {
	return field == fieldContract || field >= fieldFirstMilestone
}
