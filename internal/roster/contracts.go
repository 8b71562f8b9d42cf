package roster

import "github.com/garyjia/forecast-reporter/internal/models"

// ContractList is the authoritative set of contracts for one run
type ContractList struct {
	records      []models.ContractRecord
	byID         map[string]int
	managerOrder []string
}

// NewContractList builds a contract list. Duplicate contract IDs keep their
// first record. managerOrder is the explicit program manager ordering column;
// when empty the order of first appearance in records is used.
func NewContractList(records []models.ContractRecord, managerOrder []string) *ContractList {
	c := &ContractList{
		byID: make(map[string]int, len(records)),
	}
	for _, rec := range records {
		if rec.ContractID == "" {
			continue
		}
		if _, dup := c.byID[rec.ContractID]; dup {
			continue
		}
		c.byID[rec.ContractID] = len(c.records)
		c.records = append(c.records, rec)
	}
	c.managerOrder = dedupe(managerOrder)
	return c
}

// Lookup returns the record for a contract ID
func (c *ContractList) Lookup(contractID string) (models.ContractRecord, bool) {
	idx, ok := c.byID[contractID]
	if !ok {
		return models.ContractRecord{}, false
	}
	return c.records[idx], true
}

// Contains reports whether the contract ID is listed
func (c *ContractList) Contains(contractID string) bool {
	_, ok := c.byID[contractID]
	return ok
}

// Len returns the number of distinct contracts
func (c *ContractList) Len() int {
	return len(c.records)
}

// ManagerOrder returns program managers in report order
func (c *ContractList) ManagerOrder() []string {
	if len(c.managerOrder) > 0 {
		return c.managerOrder
	}
	managers := make([]string, 0, len(c.records))
	for _, rec := range c.records {
		managers = append(managers, rec.ProgramManager)
	}
	return dedupe(managers)
}

// dedupe drops blanks and repeats while keeping first-appearance order
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
