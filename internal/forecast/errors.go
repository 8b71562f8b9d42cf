package forecast

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSheet marks a workbook that does not follow the forecast layout
	ErrMalformedSheet = errors.New("malformed forecast sheet")
	// ErrInvalidDirectory is returned when the forecast directory cannot be scanned
	ErrInvalidDirectory = errors.New("invalid time forecast directory")
	// ErrInvalidLayout is returned for a layout descriptor that cannot be parsed against
	ErrInvalidLayout = errors.New("invalid forecast layout")
)

// MalformedSheetError describes why one forecast workbook was rejected
type MalformedSheetError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedSheetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed forecast sheet %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed forecast sheet %s: %s", e.Path, e.Reason)
}

func (e *MalformedSheetError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMalformedSheet) match any MalformedSheetError
func (e *MalformedSheetError) Is(target error) bool {
	return target == ErrMalformedSheet
}

func malformed(path, reason string, err error) *MalformedSheetError {
	return &MalformedSheetError{Path: path, Reason: reason, Err: err}
}
