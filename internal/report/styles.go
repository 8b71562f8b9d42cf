package report

import (
	"github.com/xuri/excelize/v2"
)

const (
	week1Fill   = "DAEEF3"
	borderHair  = 7
	hoursFormat = "0.0"
	pctFormat   = "0%"
)

type styleKey struct {
	kind   columnKind
	shaded bool
	border bool
	bold   bool
}

// styleSet creates each cell style once per workbook
type styleSet struct {
	f     *excelize.File
	cache map[styleKey]int
}

func newStyleSet(f *excelize.File) *styleSet {
	return &styleSet{f: f, cache: make(map[styleKey]int)}
}

func (s *styleSet) get(key styleKey) (int, error) {
	if id, ok := s.cache[key]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	switch key.kind {
	case kindCentered:
		style.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	case kindFill:
		style.Alignment = &excelize.Alignment{Horizontal: "fill"}
	case kindHours:
		format := hoursFormat
		style.CustomNumFmt = &format
	case kindPercent:
		format := pctFormat
		style.CustomNumFmt = &format
	}
	if key.shaded {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{week1Fill}}
	}
	if key.border {
		for _, side := range []string{"left", "right", "top", "bottom"} {
			style.Border = append(style.Border, excelize.Border{Type: side, Color: "000000", Style: borderHair})
		}
	}
	if key.bold {
		style.Font = &excelize.Font{Bold: true}
	}

	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.cache[key] = id
	return id, nil
}
