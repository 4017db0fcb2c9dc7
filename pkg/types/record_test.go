package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectEntriesPromotesExperienceWhenProjectsAbsent(t *testing.T) {
	record, err := ParseResumeRecord(`{
		"Person": {"name": "Alice Smith", "title": "Engineer"},
		"Experience": [
			{"company": "Acme Corp", "role": "Backend Developer", "description": "Built services in Go"}
		]
	}`)
	require.NoError(t, err)

	projects := record.ProjectEntries()
	require.Len(t, projects, 1)
	assert.Equal(t, "Acme Corp", projects[0].Name)
	assert.Equal(t, "Backend Developer", projects[0].Role)
}

func TestProjectEntriesRespectsExplicitlyEmptyProjects(t *testing.T) {
	record, err := ParseResumeRecord(`{
		"Person": {"name": "Alice Smith", "title": "Engineer"},
		"Projects": [],
		"Experience": [
			{"company": "Acme Corp", "role": "Backend Developer", "description": "Built services in Go"}
		]
	}`)
	require.NoError(t, err)

	assert.Empty(t, record.ProjectEntries())
}

func TestProjectEntriesPrefersExplicitProjects(t *testing.T) {
	record, err := ParseResumeRecord(`{
		"Person": {"name": "Alice Smith"},
		"Projects": [{"name": "Search Engine", "role": "Lead"}],
		"Experience": [{"company": "Acme Corp", "role": "Developer"}]
	}`)
	require.NoError(t, err)

	projects := record.ProjectEntries()
	require.Len(t, projects, 1)
	assert.Equal(t, "Search Engine", projects[0].Name)
}

func TestProjectEntriesPromotesForLiteralRecords(t *testing.T) {
	record := &ResumeRecord{
		Person:     PersonInfo{Name: "Bob Jones"},
		Experience: []Experience{{Company: "Widgets Inc", Role: "SRE"}},
	}

	projects := record.ProjectEntries()
	require.Len(t, projects, 1)
	assert.Equal(t, "Widgets Inc", projects[0].Name)
}
