package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/garyjia/forecast-reporter/internal/aggregate"
	"github.com/garyjia/forecast-reporter/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads the JSON paths", func(t *testing.T) {
		path := writeConfig(t, `{
			"time_forecast_directory": "/data/forecasts",
			"report_directory": "/data/reports",
			"contracts_list_filepath": "/data/ContractList.xlsx",
			"team_members_list_filepath": "/data/TeamMemberList.xlsx",
			"overhead_contracts": ["PTO"],
			"history": {"enabled": false},
			"logger": {"level": "debug"}
		}`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "/data/forecasts", cfg.TimeForecastDirectory)
		assert.Equal(t, "/data/reports", cfg.ReportDirectory)
		assert.Equal(t, "/data/ContractList.xlsx", cfg.ContractsListFilepath)
		assert.Equal(t, "/data/TeamMemberList.xlsx", cfg.TeamMembersListFilepath)
		assert.Equal(t, []string{"PTO"}, cfg.OverheadContracts)
		assert.False(t, cfg.History.Enabled)
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, "console", cfg.Logger.Format)
		assert.Equal(t, forecast.DefaultLayout(), cfg.Forecast.Layout)
		assert.Equal(t, []string{".xlsm"}, cfg.Forecast.Extensions)
		assert.Equal(t, forecast.DefaultWorkers, cfg.Forecast.Workers)
	})

	t.Run("missing file returns defaults with ErrConfigNotFound", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))

		assert.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, cfg)
		assert.Equal(t, aggregate.DefaultOverheadContracts, cfg.OverheadContracts)
		assert.Equal(t, "text", cfg.Validation.Format)
		assert.True(t, cfg.History.Enabled)
		assert.Equal(t, 20, cfg.History.Limit)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, `{"report_directory": "/from/file"}`)
		t.Setenv("FORECAST_REPORT_DIRECTORY", "/from/env")
		t.Setenv("FORECAST_VALIDATION_FORMAT", "yaml")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "/from/env", cfg.ReportDirectory)
		assert.Equal(t, "yaml", cfg.Validation.Format)
	})

	t.Run("custom layout", func(t *testing.T) {
		path := writeConfig(t, `{"forecast": {"layout": {
			"sheet": "Forecast",
			"name_cell": "B2", "date_cell": "B3", "schedule_cell": "A1",
			"alt_hours_cells": ["K40"],
			"rows": {"first": 10, "last": 20},
			"contract_rows": {"first": 10, "last": 15},
			"blocks": [{"week": 1, "columns": ["A","B","C","D","E","F","G","H","I","J","K"]}]
		}}}`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "Forecast", cfg.Forecast.Layout.Sheet)
		assert.Equal(t, forecast.RowRange{First: 10, Last: 15}, cfg.Forecast.Layout.ContractRows)
		require.Len(t, cfg.Forecast.Layout.Blocks, 1)
		assert.Equal(t, "K", cfg.Forecast.Layout.Blocks[0].Columns[10])
	})

	t.Run("rejects an unknown validation format", func(t *testing.T) {
		path := writeConfig(t, `{"validation": {"format": "csv"}}`)

		_, err := Load(path)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		path := writeConfig(t, `{"report_directory": `)

		_, err := Load(path)

		assert.Error(t, err)
	})
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FORECAST_TEST_ONLY_KEY=from-dotenv\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("FORECAST_TEST_ONLY_KEY") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-dotenv", os.Getenv("FORECAST_TEST_ONLY_KEY"))

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}
