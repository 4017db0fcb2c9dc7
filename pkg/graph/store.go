// Package graph defines the store abstraction the knowledge-graph core runs
// against, with a Neo4j driver for production use and an in-process driver
// for tests and embedded deployments.
package graph

import (
	"context"
	"errors"

	"github.com/talentgraph/talentgraph/pkg/types"
)

// ErrUnavailable is returned when the backing store cannot be reached.
var ErrUnavailable = errors.New("graph store unavailable")

// Store is the set of primitives the entity-resolution and retrieval core
// needs from a graph database. Existence checks immediately precede every
// relationship creation; when ingestion is parallelized, callers must either
// rely on EnsureConstraints for (label, name) uniqueness or serialize all
// mutating calls behind a single writer.
type Store interface {
	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// EnsureConstraints installs a uniqueness constraint on (label, name)
	// for every entity label, where the backend supports it.
	EnsureConstraints(ctx context.Context) error

	// FindNode looks a node up by exact raw name within a label.
	// Returns (nil, nil) when no such node exists.
	FindNode(ctx context.Context, label types.Label, name string) (*types.Node, error)

	// GetNode retrieves a node by UUID. Returns (nil, nil) when absent.
	GetNode(ctx context.Context, uuid string) (*types.Node, error)

	// NodesByLabel lists every node of a label in stable store order.
	NodesByLabel(ctx context.Context, label types.Label) ([]*types.Node, error)

	// CreateNode stores a new node.
	CreateNode(ctx context.Context, node *types.Node) error

	// RelationshipExists reports whether any relationship of the given type
	// connects the two nodes. Symmetric types are checked as an unordered
	// pair.
	RelationshipExists(ctx context.Context, sourceID string, relType types.RelType, targetID string) (bool, error)

	// CreateRelationship stores a new relationship.
	CreateRelationship(ctx context.Context, rel *types.Relationship) error

	// DeleteRelationship removes a relationship by UUID.
	DeleteRelationship(ctx context.Context, uuid string) error

	// RelationshipsByType lists every relationship of a type in stable
	// store order.
	RelationshipsByType(ctx context.Context, relType types.RelType) ([]*types.Relationship, error)

	// RelationshipsFrom lists outgoing relationships of a type from a node.
	RelationshipsFrom(ctx context.Context, sourceID string, relType types.RelType) ([]*types.Relationship, error)

	// RelationshipsInvolving lists every relationship touching a node,
	// regardless of type or direction.
	RelationshipsInvolving(ctx context.Context, nodeID string) ([]*types.Relationship, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
