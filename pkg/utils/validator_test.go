package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"01/29/2024", time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC), false},
		{" 12/02/2024 ", time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC), false},
		{"1/29/2024", time.Time{}, true},
		{"2024-01-29", time.Time{}, true},
		{"13/01/2024", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "list.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.NoError(t, ValidateDirectory(dir))
	assert.Error(t, ValidateDirectory(file))
	assert.Error(t, ValidateDirectory(filepath.Join(dir, "missing")))
	assert.Error(t, ValidateDirectory(""))

	assert.NoError(t, ValidateFile(file))
	assert.Error(t, ValidateFile(dir))
	assert.Error(t, ValidateFile(""))
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "forecast.log")

	logger, err := NewLogger(LoggerConfig{Level: "debug", OutputPath: path, Format: "json"})
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"hello"`)
	assert.Contains(t, string(content), `"timestamp"`)
}
