package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/garyjia/forecast-reporter/internal/aggregate"
	"github.com/garyjia/forecast-reporter/internal/forecast"
	"github.com/garyjia/forecast-reporter/internal/report"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// ErrConfigNotFound is returned alongside a default configuration when the
// config file does not exist
var ErrConfigNotFound = errors.New("config file not found")

// EnvPrefix prefixes environment overrides, e.g. FORECAST_REPORT_DIRECTORY
const EnvPrefix = "FORECAST"

// DefaultPath is the config file read when none is given
const DefaultPath = "config.json"

// Config holds all application configuration
type Config struct {
	TimeForecastDirectory   string           `mapstructure:"time_forecast_directory"`
	ReportDirectory         string           `mapstructure:"report_directory"`
	ContractsListFilepath   string           `mapstructure:"contracts_list_filepath"`
	TeamMembersListFilepath string           `mapstructure:"team_members_list_filepath"`
	OverheadContracts       []string         `mapstructure:"overhead_contracts"`
	Forecast                ForecastConfig   `mapstructure:"forecast"`
	Roster                  RosterConfig     `mapstructure:"roster"`
	Validation              ValidationConfig `mapstructure:"validation"`
	History                 HistoryConfig    `mapstructure:"history"`
	Logger                  LoggerConfig     `mapstructure:"logger"`
}

// ForecastConfig holds forecast workbook discovery and layout settings
type ForecastConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Workers    int      `mapstructure:"workers"` // workbooks extracted concurrently
	// Layout replaces the standard template layout when its sheet is set
	Layout forecast.Layout `mapstructure:"layout"`
}

// RosterConfig names the sheets of the contract and team list workbooks
type RosterConfig struct {
	ContractSheet string `mapstructure:"contract_sheet"`
	TeamSheet     string `mapstructure:"team_sheet"`
}

// ValidationConfig holds validation report settings
type ValidationConfig struct {
	Format string `mapstructure:"format"` // text or yaml
}

// HistoryConfig holds run history database configuration
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Limit   int    `mapstructure:"limit"` // runs listed by the history command
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configuration from a JSON file, a .env file in the working
// directory and FORECAST_ environment variables. A missing config file is
// not fatal: the defaults are returned together with ErrConfigNotFound.
func Load(configPath string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	if configPath == "" {
		configPath = DefaultPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var notFound bool
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		notFound = true
	} else if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Forecast.Layout.Sheet == "" {
		cfg.Forecast.Layout = forecast.DefaultLayout()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if notFound {
		return &cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment if the file exists
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("time_forecast_directory", ".")
	v.SetDefault("report_directory", ".")
	v.SetDefault("contracts_list_filepath", "ContractList.xlsx")
	v.SetDefault("team_members_list_filepath", "TeamMemberList.xlsx")
	v.SetDefault("overhead_contracts", aggregate.DefaultOverheadContracts)

	v.SetDefault("forecast.extensions", forecast.DefaultExtensions)
	v.SetDefault("forecast.workers", forecast.DefaultWorkers)

	v.SetDefault("roster.contract_sheet", "Sheet1")
	v.SetDefault("roster.team_sheet", "Sheet1")

	v.SetDefault("validation.format", report.FormatText)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "data/forecast_history.db")
	v.SetDefault("history.limit", 20)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Validation.Format {
	case report.FormatText, report.FormatYAML:
	default:
		return fmt.Errorf("validation.format must be %q or %q, got %q",
			report.FormatText, report.FormatYAML, c.Validation.Format)
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	if c.History.Limit < 1 {
		return fmt.Errorf("history.limit must be positive")
	}

	if c.Forecast.Workers < 1 {
		return fmt.Errorf("forecast.workers must be positive")
	}
	if len(c.Forecast.Extensions) == 0 {
		return fmt.Errorf("forecast.extensions must not be empty")
	}
	if err := c.Forecast.Layout.Validate(); err != nil {
		return err
	}

	return nil
}
