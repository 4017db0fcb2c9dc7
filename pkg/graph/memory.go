package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/talentgraph/talentgraph/pkg/types"
)

// MemoryStore is an in-process Store backed by maps. All operations are
// serialized by a single mutex, which satisfies the single-writer discipline
// the non-atomic check-then-create sequences require. Iteration order is
// insertion order, so first-found fuzzy matching stays deterministic.
type MemoryStore struct {
	mu sync.RWMutex

	nodes     map[string]*types.Node
	nodeOrder map[types.Label][]string
	nameIndex map[types.Label]map[string]string

	rels     map[string]*types.Relationship
	relOrder []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes:     make(map[string]*types.Node),
		nodeOrder: make(map[types.Label][]string),
		nameIndex: make(map[types.Label]map[string]string),
		rels:      make(map[string]*types.Relationship),
	}
}

// Ping implements Store.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// EnsureConstraints implements Store. Uniqueness is enforced directly by
// CreateNode, so there is nothing to install.
func (s *MemoryStore) EnsureConstraints(ctx context.Context) error { return nil }

// FindNode implements Store.
func (s *MemoryStore) FindNode(ctx context.Context, label types.Label, name string) (*types.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byName, ok := s.nameIndex[label]
	if !ok {
		return nil, nil
	}
	uuid, ok := byName[name]
	if !ok {
		return nil, nil
	}
	return s.nodes[uuid], nil
}

// GetNode implements Store.
func (s *MemoryStore) GetNode(ctx context.Context, uuid string) (*types.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[uuid], nil
}

// NodesByLabel implements Store.
func (s *MemoryStore) NodesByLabel(ctx context.Context, label types.Label) ([]*types.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := s.nodeOrder[label]
	nodes := make([]*types.Node, 0, len(order))
	for _, uuid := range order {
		nodes = append(nodes, s.nodes[uuid])
	}
	return nodes, nil
}

// CreateNode implements Store. Creating a second node with the same
// (label, name) fails, mirroring a store-level uniqueness constraint.
func (s *MemoryStore) CreateNode(ctx context.Context, node *types.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName, ok := s.nameIndex[node.Label]
	if !ok {
		byName = make(map[string]string)
		s.nameIndex[node.Label] = byName
	}
	if _, exists := byName[node.Name]; exists {
		return fmt.Errorf("node %s %q already exists", node.Label, node.Name)
	}

	s.nodes[node.Uuid] = node
	s.nodeOrder[node.Label] = append(s.nodeOrder[node.Label], node.Uuid)
	byName[node.Name] = node.Uuid
	return nil
}

// RelationshipExists implements Store.
func (s *MemoryStore) RelationshipExists(ctx context.Context, sourceID string, relType types.RelType, targetID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, uuid := range s.relOrder {
		rel := s.rels[uuid]
		if rel.Type != relType {
			continue
		}
		if rel.SourceID == sourceID && rel.TargetID == targetID {
			return true, nil
		}
		if relType.Symmetric() && rel.SourceID == targetID && rel.TargetID == sourceID {
			return true, nil
		}
	}
	return false, nil
}

// CreateRelationship implements Store.
func (s *MemoryStore) CreateRelationship(ctx context.Context, rel *types.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[rel.SourceID]; !ok {
		return fmt.Errorf("source node %s not found", rel.SourceID)
	}
	if _, ok := s.nodes[rel.TargetID]; !ok {
		return fmt.Errorf("target node %s not found", rel.TargetID)
	}

	s.rels[rel.Uuid] = rel
	s.relOrder = append(s.relOrder, rel.Uuid)
	return nil
}

// DeleteRelationship implements Store.
func (s *MemoryStore) DeleteRelationship(ctx context.Context, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rels[uuid]; !ok {
		return nil
	}
	delete(s.rels, uuid)
	for i, id := range s.relOrder {
		if id == uuid {
			s.relOrder = append(s.relOrder[:i], s.relOrder[i+1:]...)
			break
		}
	}
	return nil
}

// RelationshipsByType implements Store.
func (s *MemoryStore) RelationshipsByType(ctx context.Context, relType types.RelType) ([]*types.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rels []*types.Relationship
	for _, uuid := range s.relOrder {
		if rel := s.rels[uuid]; rel.Type == relType {
			rels = append(rels, rel)
		}
	}
	return rels, nil
}

// RelationshipsFrom implements Store.
func (s *MemoryStore) RelationshipsFrom(ctx context.Context, sourceID string, relType types.RelType) ([]*types.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rels []*types.Relationship
	for _, uuid := range s.relOrder {
		rel := s.rels[uuid]
		if rel.Type == relType && rel.SourceID == sourceID {
			rels = append(rels, rel)
		}
	}
	return rels, nil
}

// RelationshipsInvolving implements Store.
func (s *MemoryStore) RelationshipsInvolving(ctx context.Context, nodeID string) ([]*types.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rels []*types.Relationship
	for _, uuid := range s.relOrder {
		rel := s.rels[uuid]
		if rel.SourceID == nodeID || rel.TargetID == nodeID {
			rels = append(rels, rel)
		}
	}
	return rels, nil
}

// Close implements Store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }
