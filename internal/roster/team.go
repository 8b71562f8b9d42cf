package roster

import (
	"strings"

	"github.com/garyjia/forecast-reporter/internal/models"
)

// TeamRoster is the list of people expected to submit a forecast
type TeamRoster struct {
	members     []models.TeamMember
	byName      map[string]int
	disciplines []string
}

// NewTeamRoster builds a roster. Duplicate names keep their first record.
func NewTeamRoster(members []models.TeamMember) *TeamRoster {
	t := &TeamRoster{
		byName: make(map[string]int, len(members)),
	}
	var groupList []string
	for _, m := range members {
		// the discipline list column is independent of the person on the same row
		groupList = append(groupList, m.GroupList)
		if m.Name == "" {
			continue
		}
		if _, dup := t.byName[m.Name]; dup {
			continue
		}
		t.byName[m.Name] = len(t.members)
		t.members = append(t.members, m)
	}
	t.disciplines = dedupe(groupList)
	return t
}

// Members returns roster members in list order
func (t *TeamRoster) Members() []models.TeamMember {
	return t.members
}

// Names returns member names in list order
func (t *TeamRoster) Names() []string {
	names := make([]string, 0, len(t.members))
	for _, m := range t.members {
		names = append(names, m.Name)
	}
	return names
}

// Lookup returns the member with exactly this name
func (t *TeamRoster) Lookup(name string) (models.TeamMember, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return models.TeamMember{}, false
	}
	return t.members[idx], true
}

// MatchName reports whether name is a case-sensitive substring of any roster name
func (t *TeamRoster) MatchName(name string) bool {
	if name == "" {
		return false
	}
	for _, m := range t.members {
		if strings.Contains(m.Name, name) {
			return true
		}
	}
	return false
}

// DisciplineOrder returns disciplines in the order of the roster's discipline column
func (t *TeamRoster) DisciplineOrder() []string {
	return t.disciplines
}

// Len returns the number of distinct members
func (t *TeamRoster) Len() int {
	return len(t.members)
}

// NewTeamRosterFromNames builds a roster holding only names
func NewTeamRosterFromNames(names ...string) *TeamRoster {
	members := make([]models.TeamMember, 0, len(names))
	for _, n := range names {
		members = append(members, models.TeamMember{Name: n})
	}
	return NewTeamRoster(members)
}
