package port

import (
	"github.com/garyjia/forecast-reporter/internal/forecast"
	"github.com/garyjia/forecast-reporter/internal/roster"
)

// RosterLoader loads the authoritative contract and team lists
type RosterLoader interface {
	LoadContracts(path string) (*roster.ContractList, error)
	LoadTeam(path string) (*roster.TeamRoster, error)
}

// ForecastScanner extracts every forecast workbook in a directory
type ForecastScanner interface {
	Scan(dir string) (*forecast.ScanResult, error)
}
