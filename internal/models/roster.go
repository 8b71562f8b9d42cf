package models

// ContractRecord represents one row of the contract list
type ContractRecord struct {
	ContractID     string `json:"contract_id" yaml:"contract_id"`
	ProgramManager string `json:"program_manager" yaml:"program_manager"`
	Description    string `json:"description" yaml:"description"`
}

// TeamMember represents one row of the team roster
type TeamMember struct {
	Name      string `json:"name" yaml:"name"`
	Group     string `json:"group" yaml:"group"`
	GroupList string `json:"group_list" yaml:"group_list"` // discipline list column, independent of Name
	Manager   string `json:"manager" yaml:"manager"`
}

// Label constants
const (
	// LabelNone groups rows whose contract, program manager or discipline is unknown
	LabelNone = "none"
)
