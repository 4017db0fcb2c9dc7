package talentgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/types"
)

func aliceRecord() *types.ResumeRecord {
	return &types.ResumeRecord{
		Person:  types.PersonInfo{Name: "Alice Smith", Title: "Software Engineer"},
		Contact: &types.ContactInfo{Email: "alice@example.com", Phone: "555-0100"},
		Skills:  []string{"Python", "python 3.9", "Go"},
		Education: []types.Education{
			{Institution: "Stanford University", Degree: "BSc Computer Science", Year: "2018"},
		},
		Projects: []types.Project{
			{
				Name:         "Search Engine",
				Role:         "Lead Developer",
				Technologies: []string{"Go", "PostgreSQL"},
				Description:  "Built a distributed search engine.",
			},
		},
	}
}

func TestBuildCreatesGraph(t *testing.T) {
	store := graph.NewMemoryStore()
	client := newTestClient(t, store, &fakeExtractor{}, nil)
	ctx := context.Background()

	require.NoError(t, client.BuildGraph(ctx, aliceRecord(), "alice.txt"))

	person, err := store.FindNode(ctx, types.LabelPerson, "Alice Smith")
	require.NoError(t, err)
	require.NotNil(t, person)
	assert.Equal(t, "Software Engineer", person.StringProp("title"))
	assert.Equal(t, "alice.txt", person.StringProp("resume_file"))

	// "python 3.9" normalizes to "python" and resolves to the existing node.
	skills, err := store.NodesByLabel(ctx, types.LabelSkill)
	require.NoError(t, err)
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Python", "Go"}, names)

	hasSkill, err := store.RelationshipsFrom(ctx, person.Uuid, types.RelHasSkill)
	require.NoError(t, err)
	assert.Len(t, hasSkill, 2)

	institution, err := store.FindNode(ctx, types.LabelInstitution, "Stanford University")
	require.NoError(t, err)
	require.NotNil(t, institution)
	assert.Equal(t, "stanford", institution.NormalizedName())

	studied, err := store.RelationshipsFrom(ctx, person.Uuid, types.RelStudiedAt)
	require.NoError(t, err)
	require.Len(t, studied, 1)
	assert.Equal(t, "BSc Computer Science", studied[0].Props["degree"])
	assert.Equal(t, "2018", studied[0].Props["year"])

	project, err := store.FindNode(ctx, types.LabelProject, "Search Engine")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "Built a distributed search engine.", project.StringProp("description"))

	worked, err := store.RelationshipsFrom(ctx, person.Uuid, types.RelWorkedOn)
	require.NoError(t, err)
	require.Len(t, worked, 1)
	assert.Equal(t, "Lead Developer", worked[0].Props["role"])

	uses, err := store.RelationshipsFrom(ctx, project.Uuid, types.RelUsesTechnology)
	require.NoError(t, err)
	assert.Len(t, uses, 2)
}

func TestBuildIsIdempotent(t *testing.T) {
	store := graph.NewMemoryStore()
	client := newTestClient(t, store, &fakeExtractor{}, nil)
	ctx := context.Background()

	require.NoError(t, client.BuildGraph(ctx, aliceRecord(), "alice.txt"))
	require.NoError(t, client.BuildGraph(ctx, aliceRecord(), "alice.txt"))

	persons, err := store.NodesByLabel(ctx, types.LabelPerson)
	require.NoError(t, err)
	require.Len(t, persons, 1)

	skills, err := store.NodesByLabel(ctx, types.LabelSkill)
	require.NoError(t, err)
	assert.Len(t, skills, 2)

	hasSkill, err := store.RelationshipsFrom(ctx, persons[0].Uuid, types.RelHasSkill)
	require.NoError(t, err)
	assert.Len(t, hasSkill, 2)

	studied, err := store.RelationshipsFrom(ctx, persons[0].Uuid, types.RelStudiedAt)
	require.NoError(t, err)
	assert.Len(t, studied, 1)
}

func TestBuildDefaultsMissingPersonName(t *testing.T) {
	store := graph.NewMemoryStore()
	client := newTestClient(t, store, &fakeExtractor{}, nil)
	ctx := context.Background()

	record := &types.ResumeRecord{Skills: []string{"Python"}}
	require.NoError(t, client.BuildGraph(ctx, record, "anon.txt"))

	person, err := store.FindNode(ctx, types.LabelPerson, "Unknown")
	require.NoError(t, err)
	require.NotNil(t, person)
}

func TestBuildPromotesExperienceToProjects(t *testing.T) {
	store := graph.NewMemoryStore()
	extractor := &fakeExtractor{technologies: []string{"Kafka", "Redis"}}
	client := newTestClient(t, store, extractor, nil)
	ctx := context.Background()

	record := &types.ResumeRecord{
		Person: types.PersonInfo{Name: "Bob Jones"},
		Experience: []types.Experience{
			{Company: "Acme Corp", Role: "Backend Engineer", Description: "Stream processing pipelines."},
		},
	}
	require.NoError(t, client.BuildGraph(ctx, record, "bob.txt"))

	project, err := store.FindNode(ctx, types.LabelProject, "Acme Corp")
	require.NoError(t, err)
	require.NotNil(t, project)

	// No technologies listed, so they are mined from the description.
	uses, err := store.RelationshipsFrom(ctx, project.Uuid, types.RelUsesTechnology)
	require.NoError(t, err)
	assert.Len(t, uses, 2)
}

func TestBuildFuzzyMatchesInstitutions(t *testing.T) {
	store := graph.NewMemoryStore()
	client := newTestClient(t, store, &fakeExtractor{}, nil)
	ctx := context.Background()

	first := &types.ResumeRecord{
		Person:    types.PersonInfo{Name: "Alice Smith"},
		Education: []types.Education{{Institution: "Stanford University", Degree: "BSc", Year: "2018"}},
	}
	second := &types.ResumeRecord{
		Person:    types.PersonInfo{Name: "Bob Jones"},
		Education: []types.Education{{Institution: "Stanford", Degree: "MSc", Year: "2019"}},
	}
	require.NoError(t, client.BuildGraph(ctx, first, "alice.txt"))
	require.NoError(t, client.BuildGraph(ctx, second, "bob.txt"))

	institutions, err := store.NodesByLabel(ctx, types.LabelInstitution)
	require.NoError(t, err)
	assert.Len(t, institutions, 1)
}

func TestBuildAttachesContactsToExistingPerson(t *testing.T) {
	store := graph.NewMemoryStore()
	client := newTestClient(t, store, &fakeExtractor{}, nil)
	ctx := context.Background()

	require.NoError(t, client.BuildGraph(ctx, aliceRecord(), "alice.txt"))

	person, err := store.FindNode(ctx, types.LabelPerson, "Alice Smith")
	require.NoError(t, err)

	email, err := store.FindNode(ctx, types.LabelEmail, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, email)
	assert.Equal(t, "alice@example.com", email.StringProp("address"))

	emails, err := store.RelationshipsFrom(ctx, person.Uuid, types.RelHasEmail)
	require.NoError(t, err)
	assert.Len(t, emails, 1)

	phones, err := store.RelationshipsFrom(ctx, person.Uuid, types.RelHasPhone)
	require.NoError(t, err)
	assert.Len(t, phones, 1)
}
