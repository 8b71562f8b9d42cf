package forecast_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garyjia/forecast-reporter/internal/forecast"
	"github.com/garyjia/forecast-reporter/internal/forecast/forecasttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCollector_Scan(t *testing.T) {
	monday := forecasttest.Date(2024, time.January, 29)

	t.Run("extracts valid workbooks and skips the rest", func(t *testing.T) {
		dir := t.TempDir()
		forecasttest.Write(t, dir, "b_bob.xlsm", forecasttest.Sheet{Name: "Bob Lee", Date: monday})
		forecasttest.Write(t, dir, "a_alice.xlsm", forecasttest.Sheet{Name: "Alice Smith", Date: monday})
		forecasttest.Write(t, dir, "~$a_alice.xlsm", forecasttest.Sheet{Name: "Lock File", Date: monday})
		forecasttest.Write(t, dir, "notes.xlsx", forecasttest.Sheet{Name: "Wrong Extension", Date: monday})
		forecasttest.Write(t, dir, "c_broken.xlsm", forecasttest.Sheet{Name: "No Plan", Date: monday, SheetName: "Other"})
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.xlsm"), 0755))

		c := forecast.NewCollector(newExtractor(t), nil, zap.NewNop())
		result, err := c.Scan(dir)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Scanned)
		require.Len(t, result.Forecasts, 2)
		assert.Equal(t, "Alice Smith", result.Forecasts[0].Header.Name)
		assert.Equal(t, "Bob Lee", result.Forecasts[1].Header.Name)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, filepath.Join(dir, "c_broken.xlsm"), result.Skipped[0].Path)
		assert.ErrorIs(t, result.Skipped[0].Err, forecast.ErrMalformedSheet)
	})

	t.Run("honours configured extensions", func(t *testing.T) {
		dir := t.TempDir()
		forecasttest.Write(t, dir, "alice.xlsx", forecasttest.Sheet{Name: "Alice Smith", Date: monday})
		forecasttest.Write(t, dir, "bob.xlsm", forecasttest.Sheet{Name: "Bob Lee", Date: monday})

		c := forecast.NewCollector(newExtractor(t), []string{"XLSX", "xlsm"}, zap.NewNop())
		result, err := c.Scan(dir)

		require.NoError(t, err)
		assert.Len(t, result.Forecasts, 2)
	})

	t.Run("keeps file order with concurrent extraction", func(t *testing.T) {
		dir := t.TempDir()
		names := []string{"Ann", "Ben", "Cat", "Dev", "Eve", "Fay", "Gus"}
		for i, name := range names {
			forecasttest.Write(t, dir, fmt.Sprintf("%02d.xlsm", i), forecasttest.Sheet{Name: name, Date: monday})
		}

		c := forecast.NewCollector(newExtractor(t), nil, zap.NewNop()).WithWorkers(3)
		result, err := c.Scan(dir)

		require.NoError(t, err)
		require.Len(t, result.Forecasts, len(names))
		for i, pf := range result.Forecasts {
			assert.Equal(t, names[i], pf.Header.Name)
		}
	})

	t.Run("fails on a missing directory", func(t *testing.T) {
		c := forecast.NewCollector(newExtractor(t), nil, zap.NewNop())

		_, err := c.Scan(filepath.Join(t.TempDir(), "missing"))

		assert.ErrorIs(t, err, forecast.ErrInvalidDirectory)
	})

	t.Run("fails when the path is a file", func(t *testing.T) {
		dir := t.TempDir()
		path := forecasttest.Write(t, dir, "alice.xlsm", forecasttest.Sheet{Name: "Alice Smith", Date: monday})
		c := forecast.NewCollector(newExtractor(t), nil, zap.NewNop())

		_, err := c.Scan(path)

		assert.ErrorIs(t, err, forecast.ErrInvalidDirectory)
	})
}
