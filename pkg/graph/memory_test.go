package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentgraph/talentgraph/pkg/types"
)

func TestMemoryStoreFindNode(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	node := types.NewNode(types.LabelSkill, "Python", nil)
	require.NoError(t, store.CreateNode(ctx, node))

	found, err := store.FindNode(ctx, types.LabelSkill, "Python")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, node.Uuid, found.Uuid)

	missing, err := store.FindNode(ctx, types.LabelSkill, "Go")
	require.NoError(t, err)
	assert.Nil(t, missing)

	wrongLabel, err := store.FindNode(ctx, types.LabelProject, "Python")
	require.NoError(t, err)
	assert.Nil(t, wrongLabel)
}

func TestMemoryStoreUniqueness(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateNode(ctx, types.NewNode(types.LabelSkill, "Python", nil)))
	err := store.CreateNode(ctx, types.NewNode(types.LabelSkill, "Python", nil))
	assert.Error(t, err)

	// Same name under a different label is a different entity.
	assert.NoError(t, store.CreateNode(ctx, types.NewNode(types.LabelProject, "Python", nil)))
}

func TestMemoryStoreNodesByLabelOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	names := []string{"Python", "Go", "Rust", "Java"}
	for _, name := range names {
		require.NoError(t, store.CreateNode(ctx, types.NewNode(types.LabelSkill, name, nil)))
	}

	nodes, err := store.NodesByLabel(ctx, types.LabelSkill)
	require.NoError(t, err)
	require.Len(t, nodes, len(names))
	for i, node := range nodes {
		assert.Equal(t, names[i], node.Name)
	}
}

func TestMemoryStoreRelationshipExists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alice := types.NewNode(types.LabelPerson, "Alice Smith", nil)
	python := types.NewNode(types.LabelSkill, "Python", nil)
	require.NoError(t, store.CreateNode(ctx, alice))
	require.NoError(t, store.CreateNode(ctx, python))

	exists, err := store.RelationshipExists(ctx, alice.Uuid, types.RelHasSkill, python.Uuid)
	require.NoError(t, err)
	assert.False(t, exists)

	rel := types.NewRelationship(types.RelHasSkill, alice.Uuid, python.Uuid, nil)
	require.NoError(t, store.CreateRelationship(ctx, rel))

	exists, err = store.RelationshipExists(ctx, alice.Uuid, types.RelHasSkill, python.Uuid)
	require.NoError(t, err)
	assert.True(t, exists)

	// HAS_SKILL is directed; the reverse pair does not exist.
	reverse, err := store.RelationshipExists(ctx, python.Uuid, types.RelHasSkill, alice.Uuid)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestMemoryStoreSymmetricRelationshipExists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alice := types.NewNode(types.LabelPerson, "Alice Smith", nil)
	bob := types.NewNode(types.LabelPerson, "Bob Jones", nil)
	require.NoError(t, store.CreateNode(ctx, alice))
	require.NoError(t, store.CreateNode(ctx, bob))

	rel := types.NewRelationship(types.RelStudiedWith, alice.Uuid, bob.Uuid, map[string]any{
		"institution": "Stanford University",
	})
	require.NoError(t, store.CreateRelationship(ctx, rel))

	forward, err := store.RelationshipExists(ctx, alice.Uuid, types.RelStudiedWith, bob.Uuid)
	require.NoError(t, err)
	assert.True(t, forward)

	backward, err := store.RelationshipExists(ctx, bob.Uuid, types.RelStudiedWith, alice.Uuid)
	require.NoError(t, err)
	assert.True(t, backward)
}

func TestMemoryStoreDeleteRelationship(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alice := types.NewNode(types.LabelPerson, "Alice Smith", nil)
	python := types.NewNode(types.LabelSkill, "Python", nil)
	require.NoError(t, store.CreateNode(ctx, alice))
	require.NoError(t, store.CreateNode(ctx, python))

	rel := types.NewRelationship(types.RelHasSkill, alice.Uuid, python.Uuid, nil)
	require.NoError(t, store.CreateRelationship(ctx, rel))
	require.NoError(t, store.DeleteRelationship(ctx, rel.Uuid))

	exists, err := store.RelationshipExists(ctx, alice.Uuid, types.RelHasSkill, python.Uuid)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing relationship is a no-op.
	assert.NoError(t, store.DeleteRelationship(ctx, rel.Uuid))
}

func TestMemoryStoreRelationshipQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alice := types.NewNode(types.LabelPerson, "Alice Smith", nil)
	python := types.NewNode(types.LabelSkill, "Python", nil)
	golang := types.NewNode(types.LabelSkill, "Go", nil)
	stanford := types.NewNode(types.LabelInstitution, "Stanford University", nil)
	for _, n := range []*types.Node{alice, python, golang, stanford} {
		require.NoError(t, store.CreateNode(ctx, n))
	}

	hasPython := types.NewRelationship(types.RelHasSkill, alice.Uuid, python.Uuid, nil)
	hasGo := types.NewRelationship(types.RelHasSkill, alice.Uuid, golang.Uuid, nil)
	studied := types.NewRelationship(types.RelStudiedAt, alice.Uuid, stanford.Uuid, nil)
	for _, r := range []*types.Relationship{hasPython, hasGo, studied} {
		require.NoError(t, store.CreateRelationship(ctx, r))
	}

	byType, err := store.RelationshipsByType(ctx, types.RelHasSkill)
	require.NoError(t, err)
	require.Len(t, byType, 2)
	assert.Equal(t, hasPython.Uuid, byType[0].Uuid)
	assert.Equal(t, hasGo.Uuid, byType[1].Uuid)

	from, err := store.RelationshipsFrom(ctx, alice.Uuid, types.RelStudiedAt)
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, stanford.Uuid, from[0].TargetID)

	involving, err := store.RelationshipsInvolving(ctx, python.Uuid)
	require.NoError(t, err)
	require.Len(t, involving, 1)
	assert.Equal(t, hasPython.Uuid, involving[0].Uuid)
}
