package types

import (
	"github.com/google/uuid"
)

// Label identifies the category of a graph node.
type Label string

const (
	LabelPerson      Label = "Person"
	LabelSkill       Label = "Skill"
	LabelInstitution Label = "Institution"
	LabelProject     Label = "Project"
	LabelTechnology  Label = "Technology"
	LabelEmail       Label = "Email"
	LabelPhone       Label = "Phone"
)

// RelType identifies the type of a graph relationship.
type RelType string

const (
	RelHasSkill       RelType = "HAS_SKILL"
	RelHasEmail       RelType = "HAS_EMAIL"
	RelHasPhone       RelType = "HAS_PHONE"
	RelStudiedAt      RelType = "STUDIED_AT"
	RelWorkedOn       RelType = "WORKED_ON"
	RelUsesTechnology RelType = "USES_TECHNOLOGY"

	// Derived person-to-person relationships, created by the connection
	// inference pass. These are symmetric: at most one per unordered pair.
	RelStudiedWith  RelType = "STUDIED_WITH"
	RelWorkedWith   RelType = "WORKED_WITH"
	RelSharesSkills RelType = "SHARES_SKILLS"
)

// Node is a single entity in the knowledge graph. Identity within a label is
// the Name property; Uuid is the storage-level key.
type Node struct {
	Uuid  string         `json:"uuid"`
	Label Label          `json:"label"`
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// NewNode creates a node with a fresh UUID.
func NewNode(label Label, name string, props map[string]any) *Node {
	if props == nil {
		props = map[string]any{}
	}
	return &Node{
		Uuid:  uuid.New().String(),
		Label: label,
		Name:  name,
		Props: props,
	}
}

// StringProp returns a string-valued property, or "" when absent or not a string.
func (n *Node) StringProp(key string) string {
	if n == nil || n.Props == nil {
		return ""
	}
	if s, ok := n.Props[key].(string); ok {
		return s
	}
	return ""
}

// NormalizedName returns the stored normalized_name property. It is only
// present when normalization changed the lower-cased raw name.
func (n *Node) NormalizedName() string {
	return n.StringProp("normalized_name")
}

// Relationship connects two nodes. Symmetric relationship types treat
// (SourceID, TargetID) as an unordered pair.
type Relationship struct {
	Uuid     string         `json:"uuid"`
	Type     RelType        `json:"type"`
	SourceID string         `json:"source_id"`
	TargetID string         `json:"target_id"`
	Props    map[string]any `json:"props,omitempty"`
}

// NewRelationship creates a relationship with a fresh UUID.
func NewRelationship(relType RelType, sourceID, targetID string, props map[string]any) *Relationship {
	if props == nil {
		props = map[string]any{}
	}
	return &Relationship{
		Uuid:     uuid.New().String(),
		Type:     relType,
		SourceID: sourceID,
		TargetID: targetID,
		Props:    props,
	}
}

// Symmetric reports whether the relationship type is person-to-person and
// undirected for existence checks.
func (t RelType) Symmetric() bool {
	switch t {
	case RelStudiedWith, RelWorkedWith, RelSharesSkills:
		return true
	}
	return false
}
