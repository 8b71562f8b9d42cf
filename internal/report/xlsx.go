package report

import (
	"fmt"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetName is the name of the single report worksheet
const SheetName = "Report"

const (
	dateFormat      = "2006-01-02"
	generatedFormat = "2006-01-02 15:04:05.000000"

	reportedHeading = "Team Members Reported:"
	missingHeading  = "Members Missing:"
)

// Writer renders aggregated reports to formatted workbooks
type Writer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewWriter creates a new Writer
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{
		logger: logger,
		now:    time.Now,
	}
}

// Title returns the first-row title of a report
func Title(weekBeginning, generated time.Time) string {
	return fmt.Sprintf("REPORT FOR WEEK BEGINNING: %s, GENERATED: %s",
		weekBeginning.Format(dateFormat), generated.Format(generatedFormat))
}

// Save renders the report and writes it to path
func (w *Writer) Save(r *models.Report, path string) error {
	f, err := w.Render(r)
	if err != nil {
		return err
	}
	defer f.Close()

	w.logger.Info("Saving report", zap.String("path", path))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Render lays the report out on a new workbook. The caller closes the file.
func (w *Writer) Render(r *models.Report) (*excelize.File, error) {
	if r == nil {
		return nil, ErrEmptyReport
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	s := &sheetWriter{
		f:      f,
		cols:   columnsFor(r.Variant),
		styles: newStyleSet(f),
		row:    1,
	}
	if err := s.write(r, w.now()); err != nil {
		f.Close()
		return nil, err
	}

	w.logger.Debug("Report rendered",
		zap.String("variant", string(r.Variant)),
		zap.Int("rows", s.row-1))
	return f, nil
}

// sheetWriter tracks the current row while the report is laid out
type sheetWriter struct {
	f      *excelize.File
	cols   []column
	styles *styleSet
	row    int
}

func (s *sheetWriter) write(r *models.Report, generated time.Time) error {
	if err := s.bold(1, Title(r.WeekBeginning, generated)); err != nil {
		return err
	}
	s.row++
	if err := s.header(); err != nil {
		return err
	}

	for i, section := range r.Sections {
		if i > 0 {
			if err := s.header(); err != nil {
				return err
			}
		}
		for _, block := range section.Blocks {
			if err := s.block(block); err != nil {
				return fmt.Errorf("failed to write block %s: %w", block.Key, err)
			}
		}
	}

	if err := s.listing(reportedHeading, r.Reported); err != nil {
		return err
	}
	s.row++
	if err := s.listing(missingHeading, r.Missing); err != nil {
		return err
	}

	return s.widths()
}

func (s *sheetWriter) header() error {
	for i, c := range s.cols {
		kind := kindText
		if c.kind == kindCentered {
			kind = kindCentered
		}
		if err := s.set(i+1, c.header, styleKey{kind: kind, bold: true}); err != nil {
			return err
		}
	}
	s.row++
	return nil
}

// block writes the label row (key, label, description), the shaded week 1
// rows and the week 2 rows, then merges the key column over the block and
// the week column over each week
func (s *sheetWriter) block(b models.ReportBlock) error {
	first := s.row
	for i := range s.cols {
		var v interface{}
		switch {
		case i == 0:
			v = b.Key
		case i == 1:
			v = b.Label
		case i == 2 && b.Description != "":
			v = b.Description
		}
		if err := s.set(i+1, v, styleKey{kind: s.cols[i].kind, border: true}); err != nil {
			return err
		}
	}
	s.row++

	if err := s.week(models.Week1, b.Week1, true); err != nil {
		return err
	}
	if err := s.week(models.Week2, b.Week2, false); err != nil {
		return err
	}

	w1, w2 := len(b.Week1), len(b.Week2)
	if w1+w2 > 0 {
		if err := s.merge(1, first, first+w1+w2); err != nil {
			return err
		}
	}
	if w1 > 1 {
		if err := s.merge(2, first+1, first+w1); err != nil {
			return err
		}
	}
	if w2 > 1 {
		if err := s.merge(2, first+w1+1, first+w1+w2); err != nil {
			return err
		}
	}

	s.row++
	return nil
}

func (s *sheetWriter) week(week int, rows []models.AggregatedReportRow, shaded bool) error {
	for n, r := range rows {
		for i, c := range s.cols {
			var v interface{}
			switch {
			case i == 1 && n == 0:
				v = week
			case c.value != nil:
				v = c.value(r)
			}
			if err := s.set(i+1, v, styleKey{kind: c.kind, shaded: shaded, border: true}); err != nil {
				return err
			}
		}
		s.row++
	}
	return nil
}

func (s *sheetWriter) listing(heading string, names []string) error {
	if err := s.bold(s.row, heading); err != nil {
		return err
	}
	s.row++
	for _, name := range names {
		if err := s.bold(s.row, name); err != nil {
			return err
		}
		s.row++
	}
	return nil
}

func (s *sheetWriter) widths() error {
	for i, c := range s.cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := s.f.SetColWidth(SheetName, name, name, c.width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
	}
	return nil
}

// bold writes one bold, left-aligned value into column A of row
func (s *sheetWriter) bold(row int, value string) error {
	saved := s.row
	s.row = row
	err := s.set(1, value, styleKey{kind: kindText, bold: true})
	s.row = saved
	return err
}

func (s *sheetWriter) set(col int, value interface{}, key styleKey) error {
	ref, err := excelize.CoordinatesToCellName(col, s.row)
	if err != nil {
		return err
	}
	if value != nil {
		if err := s.f.SetCellValue(SheetName, ref, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", ref, err)
		}
	}
	style, err := s.styles.get(key)
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	return s.f.SetCellStyle(SheetName, ref, ref, style)
}

func (s *sheetWriter) merge(col, fromRow, toRow int) error {
	top, err := excelize.CoordinatesToCellName(col, fromRow)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col, toRow)
	if err != nil {
		return err
	}
	if err := s.f.MergeCell(SheetName, top, bottom); err != nil {
		return fmt.Errorf("failed to merge %s:%s: %w", top, bottom, err)
	}
	return nil
}
