package talentgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/types"
)

func bobRecord() *types.ResumeRecord {
	return &types.ResumeRecord{
		Person: types.PersonInfo{Name: "Bob Jones", Title: "Data Analyst"},
		Skills: []string{"SQL"},
	}
}

func TestCandidatesListsEveryPersonSorted(t *testing.T) {
	store := graph.NewMemoryStore()
	client := newTestClient(t, store, &fakeExtractor{}, nil)
	ctx := context.Background()

	// Ingest out of name order so sorting is observable.
	require.NoError(t, client.BuildGraph(ctx, bobRecord(), "bob.txt"))
	require.NoError(t, client.BuildGraph(ctx, aliceRecord(), "alice.txt"))

	candidates, err := client.Candidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	alice := candidates[0]
	assert.Equal(t, "Alice Smith", alice.Name)
	assert.Equal(t, "Software Engineer", alice.Title)
	assert.Equal(t, []string{"Python", "Go"}, alice.Skills)
	assert.Equal(t, []string{"Stanford University"}, alice.Institutions)
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.Equal(t, "555-0100", alice.Phone)

	bob := candidates[1]
	assert.Equal(t, "Bob Jones", bob.Name)
	assert.Equal(t, []string{"SQL"}, bob.Skills)
	assert.Empty(t, bob.Institutions)
	assert.Empty(t, bob.Email)
}

func TestCandidateReturnsFullProfile(t *testing.T) {
	store := graph.NewMemoryStore()
	client := newTestClient(t, store, &fakeExtractor{}, nil)
	ctx := context.Background()

	require.NoError(t, client.BuildGraph(ctx, aliceRecord(), "alice.txt"))

	detail, err := client.Candidate(ctx, "Alice Smith")
	require.NoError(t, err)

	assert.Equal(t, "Alice Smith", detail.Name)
	assert.Equal(t, "Software Engineer", detail.Title)
	assert.Equal(t, []string{"Python", "Go"}, detail.Skills)

	require.Len(t, detail.Education, 1)
	assert.Equal(t, "Stanford University", detail.Education[0].Institution)
	assert.Equal(t, "BSc Computer Science", detail.Education[0].Degree)
	assert.Equal(t, "2018", detail.Education[0].Year)

	require.Len(t, detail.Projects, 1)
	project := detail.Projects[0]
	assert.Equal(t, "Search Engine", project.Name)
	assert.Equal(t, "Lead Developer", project.Role)
	assert.Equal(t, "Built a distributed search engine.", project.Description)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, project.Technologies)
}

func TestCandidateNotFound(t *testing.T) {
	client := newTestClient(t, graph.NewMemoryStore(), &fakeExtractor{}, nil)

	_, err := client.Candidate(context.Background(), "Nobody Here")
	assert.ErrorIs(t, err, ErrNotFound)
}
