package utils

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// WeekDateLayout is the only accepted format for an entered week beginning date
const WeekDateLayout = "01/02/2006"

// ParseWeekDate parses a strict MM/DD/YYYY date as a UTC calendar date
func ParseWeekDate(s string) (time.Time, error) {
	t, err := time.Parse(WeekDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use MM/DD/YYYY", s)
	}
	return t, nil
}

// ValidateDirectory checks that path names an existing directory
func ValidateDirectory(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("directory path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// ValidateFile checks that path names an existing regular file
func ValidateFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("file path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
