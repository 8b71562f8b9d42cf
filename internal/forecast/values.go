package forecast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are the text forms accepted for the forecast date cell
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
}

// parseQuantity parses a raw numeric cell. A blank cell yields a blank
// quantity; ok is false only when the cell holds text that is not a number.
func parseQuantity(raw string) (q models.Quantity, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Quantity{}, true
	}

	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		scale = 0.01
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return models.Quantity{}, false
	}
	return models.Num(v * scale), true
}

// parseDate parses a date cell given either as an Excel serial number or as text.
// The result is midnight UTC of that calendar day.
func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", s, err)
		}
		return civilDate(t), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civilDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// wholeHours truncates a quantity to a non-negative integer, blank counts as zero
func wholeHours(q models.Quantity) int {
	if q.Blank() || q.Value <= 0 {
		return 0
	}
	return int(q.Value)
}
