package roster

import "errors"

var (
	// ErrListNotFound is returned when a roster or contract workbook does not exist
	ErrListNotFound = errors.New("list file not found")
	// ErrSheetMissing is returned when the configured sheet is absent from the workbook
	ErrSheetMissing = errors.New("list sheet missing")
)
