package similarity

import (
	"context"

	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/normalize"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// Similarity thresholds for resolving candidate names against existing nodes.
// Project names carry more incidental overlap, so they match stricter.
const (
	DefaultThreshold = 0.85
	ProjectThreshold = 0.9
)

// Matcher resolves candidate entity names to existing graph nodes,
// exact-match first, then fuzzy over normalized names.
type Matcher struct {
	store graph.Store
}

// NewMatcher creates a matcher over the given store.
func NewMatcher(store graph.Store) *Matcher {
	return &Matcher{store: store}
}

// FindSimilar returns the existing node a candidate name refers to, or nil
// when no node matches. The exact raw-name lookup always wins; otherwise the
// first node in store order whose normalized name scores at or above the
// threshold is returned. First-found is deliberate: it favors earlier-created
// canonical entries over later near-duplicates.
func (m *Matcher) FindSimilar(ctx context.Context, label types.Label, name string, threshold float64) (*types.Node, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	node, err := m.store.FindNode(ctx, label, name)
	if err != nil {
		return nil, err
	}
	if node != nil {
		return node, nil
	}

	existing, err := m.store.NodesByLabel(ctx, label)
	if err != nil {
		return nil, err
	}

	normalizedNew := normalize.EntityName(name, label)
	for _, candidate := range existing {
		normalizedExisting := normalize.EntityName(candidate.Name, label)
		if Ratio(normalizedExisting, normalizedNew) >= threshold {
			return candidate, nil
		}
	}
	return nil, nil
}

// ThresholdFor returns the matching threshold for a label.
func ThresholdFor(label types.Label) float64 {
	if label == types.LabelProject {
		return ProjectThreshold
	}
	return DefaultThreshold
}
