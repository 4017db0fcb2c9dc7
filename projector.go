package talentgraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// DocumentProjector renders the graph into short natural-language sentences,
// one per structural fact, tagged with their category. Duplicate sentences
// across categories are permitted; the retriever deduplicates.
type DocumentProjector struct {
	store graph.Store
}

// NewDocumentProjector creates a projector over the given store.
func NewDocumentProjector(store graph.Store) *DocumentProjector {
	return &DocumentProjector{store: store}
}

// Project runs the fixed read-only query set and returns the corpus.
func (p *DocumentProjector) Project(ctx context.Context) ([]types.Document, error) {
	var docs []types.Document

	persons, err := p.store.NodesByLabel(ctx, types.LabelPerson)
	if err != nil {
		return nil, err
	}
	projects, err := p.store.NodesByLabel(ctx, types.LabelProject)
	if err != nil {
		return nil, err
	}

	for _, person := range persons {
		docs = append(docs, types.NewDocument(
			fmt.Sprintf("Person: %s, Title: %s", person.Name, person.StringProp("title")),
			types.CategoryPerson))
	}

	for _, person := range persons {
		doc, err := p.skillsSummary(ctx, person)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, *doc)
		}
	}

	for _, person := range persons {
		eduDocs, err := p.educationFacts(ctx, person)
		if err != nil {
			return nil, err
		}
		docs = append(docs, eduDocs...)
	}

	for _, person := range persons {
		projDocs, err := p.projectFacts(ctx, person, projects)
		if err != nil {
			return nil, err
		}
		docs = append(docs, projDocs...)
	}

	for _, project := range projects {
		connDocs, err := p.projectConnections(ctx, project)
		if err != nil {
			return nil, err
		}
		docs = append(docs, connDocs...)
	}

	for _, project := range projects {
		doc, err := p.technologiesSummary(ctx, project)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, *doc)
		}
	}

	techDocs, err := p.technologyConnections(ctx)
	if err != nil {
		return nil, err
	}
	docs = append(docs, techDocs...)

	connDocs, err := p.derivedConnections(ctx)
	if err != nil {
		return nil, err
	}
	docs = append(docs, connDocs...)

	return docs, nil
}

func (p *DocumentProjector) skillsSummary(ctx context.Context, person *types.Node) (*types.Document, error) {
	rels, err := p.store.RelationshipsFrom(ctx, person.Uuid, types.RelHasSkill)
	if err != nil {
		return nil, err
	}
	var skills []string
	for _, rel := range rels {
		skill, err := p.store.GetNode(ctx, rel.TargetID)
		if err != nil {
			return nil, err
		}
		if skill != nil {
			skills = append(skills, skill.Name)
		}
	}
	if len(skills) == 0 {
		return nil, nil
	}
	doc := types.NewDocument(
		fmt.Sprintf("%s has the following skills: %s", person.Name, strings.Join(skills, ", ")),
		types.CategorySkills)
	return &doc, nil
}

func (p *DocumentProjector) educationFacts(ctx context.Context, person *types.Node) ([]types.Document, error) {
	rels, err := p.store.RelationshipsFrom(ctx, person.Uuid, types.RelStudiedAt)
	if err != nil {
		return nil, err
	}
	var docs []types.Document
	for _, rel := range rels {
		institution, err := p.store.GetNode(ctx, rel.TargetID)
		if err != nil {
			return nil, err
		}
		if institution == nil {
			continue
		}
		docs = append(docs, types.NewDocument(
			fmt.Sprintf("%s studied %s at %s (%s)",
				person.Name, relProp(rel, "degree"), institution.Name, relProp(rel, "year")),
			types.CategoryEducation))
	}
	return docs, nil
}

// projectFacts renders one sentence per relationship from the person to a
// project-shaped node, including the role and project description.
func (p *DocumentProjector) projectFacts(ctx context.Context, person *types.Node, projects []*types.Node) ([]types.Document, error) {
	projectIDs := make(map[string]*types.Node, len(projects))
	for _, project := range projects {
		projectIDs[project.Uuid] = project
	}

	rels, err := p.store.RelationshipsInvolving(ctx, person.Uuid)
	if err != nil {
		return nil, err
	}
	var docs []types.Document
	for _, rel := range rels {
		if rel.SourceID != person.Uuid {
			continue
		}
		project, ok := projectIDs[rel.TargetID]
		if !ok {
			continue
		}
		role := relProp(rel, "role")
		if role == "" {
			role = "contributor"
		}
		text := fmt.Sprintf("%s %s project '%s' as %s.",
			person.Name, humanizeRelType(rel.Type), project.Name, role)
		if desc := project.StringProp("description"); desc != "" {
			text += " Description: " + desc
		}
		docs = append(docs, types.NewDocument(text, types.CategoryProject))
	}
	return docs, nil
}

// projectConnections renders one sentence per relationship touching a
// project, from the perspective of the other endpoint.
func (p *DocumentProjector) projectConnections(ctx context.Context, project *types.Node) ([]types.Document, error) {
	rels, err := p.store.RelationshipsInvolving(ctx, project.Uuid)
	if err != nil {
		return nil, err
	}
	var docs []types.Document
	for _, rel := range rels {
		otherID := rel.SourceID
		if otherID == project.Uuid {
			otherID = rel.TargetID
		}
		other, err := p.store.GetNode(ctx, otherID)
		if err != nil {
			return nil, err
		}
		if other == nil {
			continue
		}
		docs = append(docs, types.NewDocument(
			fmt.Sprintf("%s (%s) %s project '%s'",
				other.Name, other.Label, humanizeRelType(rel.Type), project.Name),
			types.CategoryProjectConnection))
	}
	return docs, nil
}

func (p *DocumentProjector) technologiesSummary(ctx context.Context, project *types.Node) (*types.Document, error) {
	rels, err := p.store.RelationshipsFrom(ctx, project.Uuid, types.RelUsesTechnology)
	if err != nil {
		return nil, err
	}
	var technologies []string
	for _, rel := range rels {
		tech, err := p.store.GetNode(ctx, rel.TargetID)
		if err != nil {
			return nil, err
		}
		if tech != nil {
			technologies = append(technologies, tech.Name)
		}
	}
	if len(technologies) == 0 {
		return nil, nil
	}
	doc := types.NewDocument(
		fmt.Sprintf("Project '%s' uses the following technologies: %s",
			project.Name, strings.Join(technologies, ", ")),
		types.CategoryTechnologies)
	return &doc, nil
}

func (p *DocumentProjector) technologyConnections(ctx context.Context) ([]types.Document, error) {
	rels, err := p.store.RelationshipsByType(ctx, types.RelUsesTechnology)
	if err != nil {
		return nil, err
	}
	var docs []types.Document
	for _, rel := range rels {
		source, err := p.store.GetNode(ctx, rel.SourceID)
		if err != nil {
			return nil, err
		}
		tech, err := p.store.GetNode(ctx, rel.TargetID)
		if err != nil {
			return nil, err
		}
		if source == nil || tech == nil {
			continue
		}
		docs = append(docs, types.NewDocument(
			fmt.Sprintf("%s '%s' uses technology '%s'", source.Label, source.Name, tech.Name),
			types.CategoryTechnologyConnection))
	}
	return docs, nil
}

func (p *DocumentProjector) derivedConnections(ctx context.Context) ([]types.Document, error) {
	var docs []types.Document

	render := func(relType types.RelType, format func(p1, p2 string, rel *types.Relationship) string) error {
		rels, err := p.store.RelationshipsByType(ctx, relType)
		if err != nil {
			return err
		}
		for _, rel := range rels {
			p1, err := p.store.GetNode(ctx, rel.SourceID)
			if err != nil {
				return err
			}
			p2, err := p.store.GetNode(ctx, rel.TargetID)
			if err != nil {
				return err
			}
			if p1 == nil || p2 == nil {
				continue
			}
			docs = append(docs, types.NewDocument(format(p1.Name, p2.Name, rel), types.CategoryConnection))
		}
		return nil
	}

	if err := render(types.RelStudiedWith, func(p1, p2 string, rel *types.Relationship) string {
		return fmt.Sprintf("%s and %s studied together at %s", p1, p2, relProp(rel, "institution"))
	}); err != nil {
		return nil, err
	}

	if err := render(types.RelWorkedWith, func(p1, p2 string, rel *types.Relationship) string {
		return fmt.Sprintf("%s and %s worked together on project %s", p1, p2, relProp(rel, "project"))
	}); err != nil {
		return nil, err
	}

	if err := render(types.RelSharesSkills, func(p1, p2 string, rel *types.Relationship) string {
		skills := stringSlice(rel.Props["skills"])
		if len(skills) > 5 {
			skills = skills[:5]
		}
		return fmt.Sprintf("%s and %s share %v skills including: %s",
			p1, p2, rel.Props["count"], strings.Join(skills, ", "))
	}); err != nil {
		return nil, err
	}

	return docs, nil
}

func relProp(rel *types.Relationship, key string) string {
	if s, ok := rel.Props[key].(string); ok {
		return s
	}
	return ""
}

// humanizeRelType renders WORKED_ON as "worked on".
func humanizeRelType(t types.RelType) string {
	return strings.ToLower(strings.ReplaceAll(string(t), "_", " "))
}

// stringSlice coerces a property value holding a string list. Neo4j returns
// []any; the memory store keeps []string.
func stringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
