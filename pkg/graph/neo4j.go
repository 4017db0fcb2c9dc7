package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// Neo4jStore implements Store against a Neo4j database.
type Neo4jStore struct {
	client   neo4j.DriverWithContext
	database string
}

// NewNeo4jStore creates a Neo4j-backed store.
func NewNeo4jStore(uri, username, password, database string) (*Neo4jStore, error) {
	client, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if database == "" {
		database = "neo4j"
	}
	return &Neo4jStore{client: client, database: database}, nil
}

// Ping implements Store.
func (s *Neo4jStore) Ping(ctx context.Context) error {
	if err := s.client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// entityLabels lists every label that gets a (label, name) uniqueness constraint.
var entityLabels = []types.Label{
	types.LabelPerson,
	types.LabelSkill,
	types.LabelInstitution,
	types.LabelProject,
	types.LabelTechnology,
}

// EnsureConstraints implements Store. The uniqueness constraint on
// (label, name) is the store-level guard behind every check-then-create
// sequence in the builder and inferencer.
func (s *Neo4jStore) EnsureConstraints(ctx context.Context) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	for _, label := range entityLabels {
		query := fmt.Sprintf(
			"CREATE CONSTRAINT %s_name_unique IF NOT EXISTS FOR (n:%s) REQUIRE n.name IS UNIQUE",
			strings.ToLower(string(label)), label,
		)
		if _, err := session.Run(ctx, query, nil); err != nil {
			return fmt.Errorf("failed to create constraint for %s: %w", label, err)
		}
	}
	return nil
}

// FindNode implements Store.
func (s *Neo4jStore) FindNode(ctx context.Context, label types.Label, name string) (*types.Node, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf("MATCH (n:%s {name: $name}) RETURN n LIMIT 1", label)
		res, err := tx.Run(ctx, query, map[string]any{"name": name})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*db.Record)
	if len(records) == 0 {
		return nil, nil
	}
	return nodeFromRecord(records[0], "n")
}

// GetNode implements Store.
func (s *Neo4jStore) GetNode(ctx context.Context, uuid string) (*types.Node, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (n {uuid: $uuid}) RETURN n LIMIT 1", map[string]any{"uuid": uuid})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*db.Record)
	if len(records) == 0 {
		return nil, nil
	}
	return nodeFromRecord(records[0], "n")
}

// NodesByLabel implements Store. Nodes come back in creation order, keyed on
// the created_at timestamp CreateNode stores, so first-found matching prefers
// the earliest node across runs. elementId breaks same-nanosecond ties.
func (s *Neo4jStore) NodesByLabel(ctx context.Context, label types.Label) ([]*types.Node, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf("MATCH (n:%s) RETURN n ORDER BY n.created_at ASC, elementId(n)", label)
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*db.Record)
	nodes := make([]*types.Node, 0, len(records))
	for _, record := range records {
		node, err := nodeFromRecord(record, "n")
		if err != nil {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// CreateNode implements Store.
func (s *Neo4jStore) CreateNode(ctx context.Context, node *types.Node) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf("CREATE (n:%s) SET n = $props", node.Label)
		props := map[string]any{
			"uuid":       node.Uuid,
			"name":       node.Name,
			"created_at": time.Now().UnixNano(),
		}
		for k, v := range node.Props {
			props[k] = v
		}
		_, err := tx.Run(ctx, query, map[string]any{"props": props})
		return nil, err
	})
	return err
}

// RelationshipExists implements Store.
func (s *Neo4jStore) RelationshipExists(ctx context.Context, sourceID string, relType types.RelType, targetID string) (bool, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	arrow := "->"
	if relType.Symmetric() {
		arrow = "-"
	}
	query := fmt.Sprintf(
		"MATCH (a {uuid: $source})-[r:%s]%s(b {uuid: $target}) RETURN count(r) > 0 AS exists",
		relType, arrow,
	)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"source": sourceID,
			"target": targetID,
		})
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		exists, _ := record.Get("exists")
		return exists, nil
	})
	if err != nil {
		return false, err
	}

	exists, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected type for existence check: %T", result)
	}
	return exists, nil
}

// CreateRelationship implements Store.
func (s *Neo4jStore) CreateRelationship(ctx context.Context, rel *types.Relationship) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
			MATCH (a {uuid: $source})
			MATCH (b {uuid: $target})
			CREATE (a)-[r:%s]->(b)
			SET r = $props
		`, rel.Type)
		props := map[string]any{"uuid": rel.Uuid}
		for k, v := range rel.Props {
			props[k] = v
		}
		_, err := tx.Run(ctx, query, map[string]any{
			"source": rel.SourceID,
			"target": rel.TargetID,
			"props":  props,
		})
		return nil, err
	})
	return err
}

// DeleteRelationship implements Store.
func (s *Neo4jStore) DeleteRelationship(ctx context.Context, uuid string) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, "MATCH ()-[r {uuid: $uuid}]-() DELETE r", map[string]any{"uuid": uuid})
		return nil, err
	})
	return err
}

// RelationshipsByType implements Store.
func (s *Neo4jStore) RelationshipsByType(ctx context.Context, relType types.RelType) ([]*types.Relationship, error) {
	query := fmt.Sprintf("MATCH (a)-[r:%s]->(b) RETURN r, a.uuid AS source_id, b.uuid AS target_id", relType)
	return s.collectRelationships(ctx, query, nil)
}

// RelationshipsFrom implements Store.
func (s *Neo4jStore) RelationshipsFrom(ctx context.Context, sourceID string, relType types.RelType) ([]*types.Relationship, error) {
	query := fmt.Sprintf(
		"MATCH (a {uuid: $source})-[r:%s]->(b) RETURN r, a.uuid AS source_id, b.uuid AS target_id",
		relType,
	)
	return s.collectRelationships(ctx, query, map[string]any{"source": sourceID})
}

// RelationshipsInvolving implements Store.
func (s *Neo4jStore) RelationshipsInvolving(ctx context.Context, nodeID string) ([]*types.Relationship, error) {
	query := "MATCH (a {uuid: $node})-[r]-(b) RETURN r, startNode(r).uuid AS source_id, endNode(r).uuid AS target_id"
	return s.collectRelationships(ctx, query, map[string]any{"node": nodeID})
}

// Close implements Store.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func (s *Neo4jStore) collectRelationships(ctx context.Context, query string, params map[string]any) ([]*types.Relationship, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*db.Record)
	rels := make([]*types.Relationship, 0, len(records))
	for _, record := range records {
		rel, err := relationshipFromRecord(record)
		if err != nil {
			continue
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

func nodeFromRecord(record *db.Record, key string) (*types.Node, error) {
	value, found := record.Get(key)
	if !found {
		return nil, fmt.Errorf("record has no %q column", key)
	}
	dbNode, ok := value.(dbtype.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected type for node: got %T, expected dbtype.Node", value)
	}

	node := &types.Node{Props: map[string]any{}}
	if len(dbNode.Labels) > 0 {
		node.Label = types.Label(dbNode.Labels[0])
	}
	for k, v := range dbNode.Props {
		switch k {
		case "uuid":
			if s, ok := v.(string); ok {
				node.Uuid = s
			}
		case "name":
			if s, ok := v.(string); ok {
				node.Name = s
			}
		case "created_at":
			// Driver bookkeeping for creation-order reads; the memory
			// store has no equivalent, so keep it out of Props.
		default:
			node.Props[k] = v
		}
	}
	return node, nil
}

func relationshipFromRecord(record *db.Record) (*types.Relationship, error) {
	value, found := record.Get("r")
	if !found {
		return nil, fmt.Errorf("record has no relationship column")
	}
	dbRel, ok := value.(dbtype.Relationship)
	if !ok {
		return nil, fmt.Errorf("unexpected type for relationship: got %T, expected dbtype.Relationship", value)
	}

	rel := &types.Relationship{
		Type:  types.RelType(dbRel.Type),
		Props: map[string]any{},
	}
	for k, v := range dbRel.Props {
		if k == "uuid" {
			if s, ok := v.(string); ok {
				rel.Uuid = s
			}
			continue
		}
		rel.Props[k] = v
	}
	if sourceID, ok := record.Get("source_id"); ok {
		if s, ok := sourceID.(string); ok {
			rel.SourceID = s
		}
	}
	if targetID, ok := record.Get("target_id"); ok {
		if s, ok := targetID.(string); ok {
			rel.TargetID = s
		}
	}
	return rel, nil
}
