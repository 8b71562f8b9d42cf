package aggregate

import "errors"

var (
	// ErrUnknownVariant is returned for a report variant other than pm or discipline
	ErrUnknownVariant = errors.New("unknown report variant")

	// ErrNoWeekBeginning is returned when no forecasts were extracted and no week was given
	ErrNoWeekBeginning = errors.New("week beginning cannot be determined")
)
