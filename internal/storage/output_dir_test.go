package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOutputDir_SaveFile(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	base := filepath.Join(t.TempDir(), "reports", "2024")
	d := NewOutputDir(base, logger)

	t.Run("creates the directory and writes the file", func(t *testing.T) {
		path, err := d.SaveFile("validation_report_2024-01-29--10-00-00.txt", []byte("report"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "validation_report_2024-01-29--10-00-00.txt"), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "report", string(content))
	})

	t.Run("keeps traversal attempts inside the directory", func(t *testing.T) {
		path, err := d.SaveFile("../../escape.txt", []byte("x"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "escape.txt"), path)
	})

	t.Run("rejects names that sanitize to nothing", func(t *testing.T) {
		_, err := d.SaveFile("../", []byte("x"))

		assert.Error(t, err)
	})
}

func TestOutputDir_ValidatePath(t *testing.T) {
	base := t.TempDir()
	d := NewOutputDir(base, zap.NewNop())

	assert.NoError(t, d.ValidatePath(filepath.Join(base, "PM_Report_for_2024-01-29.xlsx")))
	assert.ErrorIs(t, d.ValidatePath(filepath.Join(base, "..", "other.xlsx")), ErrPathEscapesBase)
	assert.ErrorIs(t, d.ValidatePath(base), ErrPathEscapesBase)
}

func TestOutputDir_Ensure(t *testing.T) {
	assert.Error(t, NewOutputDir("", zap.NewNop()).Ensure())

	base := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, NewOutputDir(base, zap.NewNop()).Ensure())
	assert.DirExists(t, base)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Team_Report_for_2024-01-29.xlsx", "Team_Report_for_2024-01-29.xlsx"},
		{"../x.txt", "x.txt"},
		{`a\b/c`, "abc"},
		{" ..", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in), tt.in)
	}
}
