package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talentgraph/talentgraph/pkg/normalize"
	"github.com/talentgraph/talentgraph/pkg/types"
)

func TestEntityName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		label    types.Label
		expected string
	}{
		{"empty name", "", types.LabelSkill, "unknown"},
		{"whitespace only", "   ", types.LabelInstitution, "unknown"},
		{"institution suffix stripped", "Stanford University", types.LabelInstitution, "stanford"},
		{"institution comma qualifier", "Stanford University, California", types.LabelInstitution, "stanford"},
		{"institution parenthetical", "Stanford University (California)", types.LabelInstitution, "stanford"},
		{"institution fillers", "Massachusetts Institute of Technology", types.LabelInstitution, "massachusetts institute technology"},
		{"skill version with space", "Python 3.9", types.LabelSkill, "python"},
		{"skill version attached", "python3", types.LabelSkill, "python"},
		{"skill qualifier", "Python Programming", types.LabelSkill, "python"},
		{"technology qualifier", "React framework", types.LabelTechnology, "react"},
		{"project descriptor", "Inventory Management System", types.LabelProject, "inventory management"},
		{"whitespace collapsed", "  machine    learning ", types.LabelSkill, "machine learning"},
		{"person name untouched beyond casing", "Alice Smith", types.LabelPerson, "alice smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.EntityName(tt.input, tt.label))
		})
	}
}

func TestEntityNameIdempotent(t *testing.T) {
	inputs := []struct {
		input string
		label types.Label
	}{
		{"Stanford University", types.LabelInstitution},
		{"Massachusetts Institute of Technology", types.LabelInstitution},
		{"Python 3.9", types.LabelSkill},
		{"Node.js", types.LabelTechnology},
		{"Recommendation Engine Project", types.LabelProject},
		{"", types.LabelSkill},
	}

	for _, tt := range inputs {
		once := normalize.EntityName(tt.input, tt.label)
		twice := normalize.EntityName(once, tt.label)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", tt.input)
	}
}

func TestEntityNameMatchesAcrossVariants(t *testing.T) {
	assert.Equal(t,
		normalize.EntityName("Stanford University", types.LabelInstitution),
		normalize.EntityName("Stanford", types.LabelInstitution))
	assert.Equal(t,
		normalize.EntityName("Python 3.9", types.LabelSkill),
		normalize.EntityName("Python", types.LabelSkill))
}
