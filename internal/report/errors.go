package report

import "errors"

var (
	// ErrEmptyReport is returned when a nil report is rendered
	ErrEmptyReport = errors.New("report is empty")

	// ErrUnknownFormat is returned for a validation report format other than text or yaml
	ErrUnknownFormat = errors.New("unknown validation report format")
)
