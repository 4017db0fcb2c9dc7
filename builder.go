package talentgraph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/normalize"
	"github.com/talentgraph/talentgraph/pkg/similarity"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// GraphBuilder ingests structured resume records into the graph. Every
// relationship creation is preceded by an existence check, so re-ingesting
// an identical record changes nothing. Failures abort the record; nodes
// created by earlier steps are not rolled back.
type GraphBuilder struct {
	store   graph.Store
	matcher *similarity.Matcher
	tech    TechnologyExtractor
	logger  *slog.Logger
}

// NewGraphBuilder creates a builder. The technology extractor may be nil;
// projects without listed technologies then simply get none.
func NewGraphBuilder(store graph.Store, matcher *similarity.Matcher, tech TechnologyExtractor, logger *slog.Logger) *GraphBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphBuilder{store: store, matcher: matcher, tech: tech, logger: logger}
}

// Build ingests one record. originFile is attached to the Person node on
// creation only; an existing person keeps their original reference.
func (b *GraphBuilder) Build(ctx context.Context, record *types.ResumeRecord, originFile string) error {
	person, err := b.upsertPerson(ctx, record, originFile)
	if err != nil {
		return err
	}

	if record.Contact != nil {
		if err := b.addContacts(ctx, person, record.Contact); err != nil {
			return err
		}
	}

	for _, skill := range record.Skills {
		if err := b.addSkill(ctx, person, skill); err != nil {
			return err
		}
	}

	for _, edu := range record.Education {
		if err := b.addEducation(ctx, person, edu); err != nil {
			return err
		}
	}

	for _, project := range record.ProjectEntries() {
		if err := b.addProject(ctx, person, project); err != nil {
			return err
		}
	}

	return nil
}

func (b *GraphBuilder) upsertPerson(ctx context.Context, record *types.ResumeRecord, originFile string) (*types.Node, error) {
	name := record.Person.Name
	if name == "" {
		name = "Unknown"
	}

	// Person names are matched exactly, never fuzzily.
	person, err := b.store.FindNode(ctx, types.LabelPerson, name)
	if err != nil {
		return nil, fmt.Errorf("person lookup failed: %w", err)
	}
	if person != nil {
		return person, nil
	}

	props := map[string]any{"title": record.Person.Title}
	if originFile != "" {
		props["resume_file"] = originFile
	}
	person = types.NewNode(types.LabelPerson, name, props)
	if err := b.store.CreateNode(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create person %q: %w", name, err)
	}
	return person, nil
}

// addContacts attaches email and phone leaf nodes. The edges are created
// unconditionally; only the leaf nodes themselves are reused by value.
func (b *GraphBuilder) addContacts(ctx context.Context, person *types.Node, contact *types.ContactInfo) error {
	if contact.Email != "" {
		email, err := b.findOrCreateLeaf(ctx, types.LabelEmail, contact.Email, map[string]any{"address": contact.Email})
		if err != nil {
			return err
		}
		rel := types.NewRelationship(types.RelHasEmail, person.Uuid, email.Uuid, nil)
		if err := b.store.CreateRelationship(ctx, rel); err != nil {
			return fmt.Errorf("failed to attach email: %w", err)
		}
	}

	if contact.Phone != "" {
		phone, err := b.findOrCreateLeaf(ctx, types.LabelPhone, contact.Phone, map[string]any{"number": contact.Phone})
		if err != nil {
			return err
		}
		rel := types.NewRelationship(types.RelHasPhone, person.Uuid, phone.Uuid, nil)
		if err := b.store.CreateRelationship(ctx, rel); err != nil {
			return fmt.Errorf("failed to attach phone: %w", err)
		}
	}

	return nil
}

func (b *GraphBuilder) findOrCreateLeaf(ctx context.Context, label types.Label, name string, props map[string]any) (*types.Node, error) {
	node, err := b.store.FindNode(ctx, label, name)
	if err != nil {
		return nil, err
	}
	if node != nil {
		return node, nil
	}
	node = types.NewNode(label, name, props)
	if err := b.store.CreateNode(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to create %s node: %w", label, err)
	}
	return node, nil
}

func (b *GraphBuilder) addSkill(ctx context.Context, person *types.Node, skill string) error {
	node, err := b.resolveOrCreate(ctx, types.LabelSkill, skill, nil)
	if err != nil {
		return err
	}
	return b.ensureRelationship(ctx, types.RelHasSkill, person.Uuid, node.Uuid, nil)
}

func (b *GraphBuilder) addEducation(ctx context.Context, person *types.Node, edu types.Education) error {
	name := edu.Institution
	if name == "" {
		name = "Unknown Institution"
	}
	institution, err := b.resolveOrCreate(ctx, types.LabelInstitution, name, nil)
	if err != nil {
		return err
	}
	return b.ensureRelationship(ctx, types.RelStudiedAt, person.Uuid, institution.Uuid, map[string]any{
		"degree": edu.Degree,
		"year":   edu.Year,
	})
}

func (b *GraphBuilder) addProject(ctx context.Context, person *types.Node, project types.Project) error {
	name := project.Name
	if name == "" {
		name = "Unknown Project"
	}
	node, err := b.resolveOrCreate(ctx, types.LabelProject, name, map[string]any{
		"description": project.Description,
	})
	if err != nil {
		return err
	}
	if err := b.ensureRelationship(ctx, types.RelWorkedOn, person.Uuid, node.Uuid, map[string]any{
		"role": project.Role,
	}); err != nil {
		return err
	}

	technologies := project.Technologies
	if len(technologies) == 0 && project.Description != "" && b.tech != nil {
		// Mining failure yields an empty list; the project is kept either way.
		technologies = b.tech.Technologies(ctx, project.Description)
	}

	for _, tech := range technologies {
		techNode, err := b.resolveOrCreate(ctx, types.LabelTechnology, tech, nil)
		if err != nil {
			return err
		}
		if err := b.ensureRelationship(ctx, types.RelUsesTechnology, node.Uuid, techNode.Uuid, nil); err != nil {
			return err
		}
	}

	return nil
}

// resolveOrCreate resolves a candidate name through the similarity matcher
// and creates a new node when nothing matches. New nodes store a
// normalized_name property when normalization changed the lower-cased name.
func (b *GraphBuilder) resolveOrCreate(ctx context.Context, label types.Label, name string, extraProps map[string]any) (*types.Node, error) {
	node, err := b.matcher.FindSimilar(ctx, label, name, similarity.ThresholdFor(label))
	if err != nil {
		return nil, fmt.Errorf("%s lookup failed: %w", label, err)
	}
	if node != nil {
		return node, nil
	}

	props := map[string]any{}
	for k, v := range extraProps {
		props[k] = v
	}
	normalized := normalize.EntityName(name, label)
	if normalized != strings.ToLower(strings.TrimSpace(name)) {
		props["normalized_name"] = normalized
	}

	node = types.NewNode(label, name, props)
	if err := b.store.CreateNode(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to create %s %q: %w", label, name, err)
	}
	return node, nil
}

// ensureRelationship creates the relationship only when the specific
// (source, type, target) edge does not already exist.
func (b *GraphBuilder) ensureRelationship(ctx context.Context, relType types.RelType, sourceID, targetID string, props map[string]any) error {
	exists, err := b.store.RelationshipExists(ctx, sourceID, relType, targetID)
	if err != nil {
		return fmt.Errorf("%s existence check failed: %w", relType, err)
	}
	if exists {
		return nil
	}
	rel := types.NewRelationship(relType, sourceID, targetID, props)
	if err := b.store.CreateRelationship(ctx, rel); err != nil {
		return fmt.Errorf("failed to create %s: %w", relType, err)
	}
	return nil
}
