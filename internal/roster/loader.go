package roster

import (
	"fmt"
	"strings"

	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/pkg/utils"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column positions (0-based) of the contract list and team roster workbooks
const (
	DefaultSheet = "Sheet1"

	contractColID          = 0 // A
	contractColDescription = 1 // B
	contractColManager     = 2 // C
	contractColOrder       = 4 // E, program manager ordering list

	// contract list has one title row; the ordering column starts one row lower
	contractFirstRow      = 1
	contractOrderFirstRow = 2

	teamColName      = 0 // A
	teamColGroup     = 1 // B
	teamColGroupList = 2 // C
	teamColManager   = 3 // D

	teamFirstRow = 1 // header row above
)

// Loader reads the contract list and team roster workbooks
type Loader struct {
	contractSheet string
	teamSheet     string
	logger        *zap.Logger
}

// NewLoader creates a new Loader. Empty sheet names fall back to DefaultSheet.
func NewLoader(contractSheet, teamSheet string, logger *zap.Logger) *Loader {
	if contractSheet == "" {
		contractSheet = DefaultSheet
	}
	if teamSheet == "" {
		teamSheet = DefaultSheet
	}
	return &Loader{
		contractSheet: contractSheet,
		teamSheet:     teamSheet,
		logger:        logger,
	}
}

// LoadContracts reads the contract list workbook
func (l *Loader) LoadContracts(path string) (*ContractList, error) {
	l.logger.Info("Reading contract list", zap.String("path", path))

	rows, err := l.readRows(path, l.contractSheet)
	if err != nil {
		return nil, err
	}

	var records []models.ContractRecord
	var order []string
	for i, row := range rows {
		if i >= contractFirstRow {
			id := cell(row, contractColID)
			if id != "" {
				records = append(records, models.ContractRecord{
					ContractID:     id,
					ProgramManager: cell(row, contractColManager),
					Description:    cell(row, contractColDescription),
				})
			}
		}
		if i >= contractOrderFirstRow {
			if mgr := cell(row, contractColOrder); mgr != "" {
				order = append(order, mgr)
			}
		}
	}

	list := NewContractList(records, order)
	l.logger.Debug("Contract list loaded",
		zap.Int("contracts", list.Len()),
		zap.Int("managers", len(list.ManagerOrder())))
	return list, nil
}

// LoadTeam reads the team roster workbook
func (l *Loader) LoadTeam(path string) (*TeamRoster, error) {
	l.logger.Info("Reading team member list", zap.String("path", path))

	rows, err := l.readRows(path, l.teamSheet)
	if err != nil {
		return nil, err
	}

	var members []models.TeamMember
	for i, row := range rows {
		if i < teamFirstRow {
			continue
		}
		members = append(members, models.TeamMember{
			Name:      cell(row, teamColName),
			Group:     cell(row, teamColGroup),
			GroupList: cell(row, teamColGroupList),
			Manager:   cell(row, teamColManager),
		})
	}

	team := NewTeamRoster(members)
	l.logger.Debug("Team member list loaded",
		zap.Int("members", team.Len()),
		zap.Int("disciplines", len(team.DisciplineOrder())))
	return team, nil
}

// readRows opens a workbook and returns every row of one sheet
func (l *Loader) readRows(path, sheet string) ([][]string, error) {
	if err := utils.ValidateFile(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListNotFound, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetMissing, sheet, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// cell returns the trimmed value at idx, or "" past the end of a short row
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
