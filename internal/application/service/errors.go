package service

import "errors"

// ErrWeekRequired is returned when validation is requested without a week beginning date
var ErrWeekRequired = errors.New("week beginning date is required")
