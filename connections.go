package talentgraph

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// sharedSkillsMinimum is the common-skill count at which a SHARES_SKILLS
// edge is created between two people.
const sharedSkillsMinimum = 3

// ConnectionInferencer derives person-to-person relationships from the
// current graph: STUDIED_WITH for shared institutions, WORKED_WITH for
// shared projects, and SHARES_SKILLS after merging duplicate skill nodes.
// Every pass checks edge existence first, so repeated runs are no-ops.
type ConnectionInferencer struct {
	store  graph.Store
	logger *slog.Logger
}

// NewConnectionInferencer creates an inferencer over the given store.
func NewConnectionInferencer(store graph.Store, logger *slog.Logger) *ConnectionInferencer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConnectionInferencer{store: store, logger: logger}
}

// Infer runs the three passes in order. Skill merging runs before the
// shared-skills count so merged duplicates contribute a single skill.
func (inf *ConnectionInferencer) Infer(ctx context.Context) error {
	if err := inf.connectByAffiliation(ctx, types.RelStudiedAt, types.RelStudiedWith, "institution"); err != nil {
		return fmt.Errorf("same-institution pass failed: %w", err)
	}
	if err := inf.connectByAffiliation(ctx, types.RelWorkedOn, types.RelWorkedWith, "project"); err != nil {
		return fmt.Errorf("shared-project pass failed: %w", err)
	}
	if err := inf.mergeDuplicateSkills(ctx); err != nil {
		return fmt.Errorf("skill merge failed: %w", err)
	}
	if err := inf.connectBySharedSkills(ctx); err != nil {
		return fmt.Errorf("shared-skills pass failed: %w", err)
	}
	return nil
}

// connectByAffiliation links every pair of distinct people who both hold a
// sourceRel edge to matching target nodes. Targets match by raw name or by
// equal, non-empty normalized_name.
func (inf *ConnectionInferencer) connectByAffiliation(ctx context.Context, sourceRel, derivedRel types.RelType, propKey string) error {
	persons, err := inf.store.NodesByLabel(ctx, types.LabelPerson)
	if err != nil {
		return err
	}

	targets := make([][]*types.Node, len(persons))
	for i, person := range persons {
		rels, err := inf.store.RelationshipsFrom(ctx, person.Uuid, sourceRel)
		if err != nil {
			return err
		}
		for _, rel := range rels {
			node, err := inf.store.GetNode(ctx, rel.TargetID)
			if err != nil {
				return err
			}
			if node != nil {
				targets[i] = append(targets[i], node)
			}
		}
	}

	for i := 0; i < len(persons); i++ {
		for j := i + 1; j < len(persons); j++ {
			shared := matchingTarget(targets[i], targets[j])
			if shared == "" {
				continue
			}
			exists, err := inf.store.RelationshipExists(ctx, persons[i].Uuid, derivedRel, persons[j].Uuid)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			rel := types.NewRelationship(derivedRel, persons[i].Uuid, persons[j].Uuid, map[string]any{
				propKey: shared,
			})
			if err := inf.store.CreateRelationship(ctx, rel); err != nil {
				return err
			}
			inf.logger.Info("connected people",
				"relationship", string(derivedRel),
				"person1", persons[i].Name,
				"person2", persons[j].Name,
				propKey, shared)
		}
	}
	return nil
}

// matchingTarget returns the name of the first node in a that matches any
// node in b, or "" when none match.
func matchingTarget(a, b []*types.Node) string {
	for _, na := range a {
		for _, nb := range b {
			if na.Name == nb.Name {
				return na.Name
			}
			if na.NormalizedName() != "" && na.NormalizedName() == nb.NormalizedName() {
				return na.Name
			}
		}
	}
	return ""
}

// mergeDuplicateSkills redirects HAS_SKILL edges from later-created
// duplicate skill nodes to the earliest node with the same normalized_name.
// The duplicate's person edges are all removed; the orphaned node itself is
// retained.
func (inf *ConnectionInferencer) mergeDuplicateSkills(ctx context.Context) error {
	skills, err := inf.store.NodesByLabel(ctx, types.LabelSkill)
	if err != nil {
		return err
	}

	for i := 0; i < len(skills); i++ {
		if skills[i].NormalizedName() == "" {
			continue
		}
		for j := i + 1; j < len(skills); j++ {
			if skills[j].NormalizedName() != skills[i].NormalizedName() {
				continue
			}
			if err := inf.redirectSkillEdges(ctx, skills[i], skills[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (inf *ConnectionInferencer) redirectSkillEdges(ctx context.Context, canonical, duplicate *types.Node) error {
	rels, err := inf.store.RelationshipsByType(ctx, types.RelHasSkill)
	if err != nil {
		return err
	}

	for _, rel := range rels {
		if rel.TargetID != duplicate.Uuid {
			continue
		}
		holds, err := inf.store.RelationshipExists(ctx, rel.SourceID, types.RelHasSkill, canonical.Uuid)
		if err != nil {
			return err
		}
		if !holds {
			redirected := types.NewRelationship(types.RelHasSkill, rel.SourceID, canonical.Uuid, nil)
			if err := inf.store.CreateRelationship(ctx, redirected); err != nil {
				return err
			}
		}
		if err := inf.store.DeleteRelationship(ctx, rel.Uuid); err != nil {
			return err
		}
	}

	inf.logger.Info("merged duplicate skill",
		"canonical", canonical.Name,
		"duplicate", duplicate.Name,
		"normalized_name", canonical.NormalizedName())
	return nil
}

// connectBySharedSkills links every pair of distinct people holding at
// least sharedSkillsMinimum common skill nodes.
func (inf *ConnectionInferencer) connectBySharedSkills(ctx context.Context) error {
	persons, err := inf.store.NodesByLabel(ctx, types.LabelPerson)
	if err != nil {
		return err
	}

	held := make([]map[string]string, len(persons)) // skill uuid -> skill name
	for i, person := range persons {
		held[i] = map[string]string{}
		rels, err := inf.store.RelationshipsFrom(ctx, person.Uuid, types.RelHasSkill)
		if err != nil {
			return err
		}
		for _, rel := range rels {
			skill, err := inf.store.GetNode(ctx, rel.TargetID)
			if err != nil {
				return err
			}
			if skill != nil {
				held[i][skill.Uuid] = skill.Name
			}
		}
	}

	for i := 0; i < len(persons); i++ {
		for j := i + 1; j < len(persons); j++ {
			var common []string
			for uuid, name := range held[i] {
				if _, ok := held[j][uuid]; ok {
					common = append(common, name)
				}
			}
			if len(common) < sharedSkillsMinimum {
				continue
			}
			sort.Strings(common)
			exists, err := inf.store.RelationshipExists(ctx, persons[i].Uuid, types.RelSharesSkills, persons[j].Uuid)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			rel := types.NewRelationship(types.RelSharesSkills, persons[i].Uuid, persons[j].Uuid, map[string]any{
				"skills": common,
				"count":  len(common),
			})
			if err := inf.store.CreateRelationship(ctx, rel); err != nil {
				return err
			}
			inf.logger.Info("connected people with shared skills",
				"person1", persons[i].Name,
				"person2", persons[j].Name,
				"count", len(common))
		}
	}
	return nil
}
