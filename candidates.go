package talentgraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/talentgraph/talentgraph/pkg/types"
)

// CandidateSummary is one row of the candidate listing.
type CandidateSummary struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Skills       []string `json:"skills"`
	Institutions []string `json:"institutions"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
}

// CandidateEducation is one education entry of a candidate profile.
type CandidateEducation struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Year        string `json:"year,omitempty"`
}

// CandidateProject is one project entry of a candidate profile.
type CandidateProject struct {
	Name         string   `json:"name"`
	Role         string   `json:"role,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
}

// CandidateDetail is the full profile of one candidate.
type CandidateDetail struct {
	Name      string               `json:"name"`
	Title     string               `json:"title"`
	Skills    []string             `json:"skills"`
	Education []CandidateEducation `json:"education"`
	Projects  []CandidateProject   `json:"projects"`
}

// Candidates lists every person in the graph with their skills, institutions,
// and contact details, sorted by name.
func (c *Client) Candidates(ctx context.Context) ([]CandidateSummary, error) {
	persons, err := c.store.NodesByLabel(ctx, types.LabelPerson)
	if err != nil {
		return nil, err
	}

	summaries := make([]CandidateSummary, 0, len(persons))
	for _, person := range persons {
		summary := CandidateSummary{
			Name:  person.Name,
			Title: person.StringProp("title"),
		}

		summary.Skills, err = c.relatedNames(ctx, person.Uuid, types.RelHasSkill)
		if err != nil {
			return nil, err
		}
		summary.Institutions, err = c.relatedNames(ctx, person.Uuid, types.RelStudiedAt)
		if err != nil {
			return nil, err
		}

		emails, err := c.relatedNames(ctx, person.Uuid, types.RelHasEmail)
		if err != nil {
			return nil, err
		}
		if len(emails) > 0 {
			summary.Email = emails[0]
		}
		phones, err := c.relatedNames(ctx, person.Uuid, types.RelHasPhone)
		if err != nil {
			return nil, err
		}
		if len(phones) > 0 {
			summary.Phone = phones[0]
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(a, b int) bool {
		return summaries[a].Name < summaries[b].Name
	})
	return summaries, nil
}

// Candidate returns the full profile of the named person, or ErrNotFound.
func (c *Client) Candidate(ctx context.Context, name string) (*CandidateDetail, error) {
	person, err := c.store.FindNode(ctx, types.LabelPerson, name)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, fmt.Errorf("candidate %q: %w", name, ErrNotFound)
	}

	detail := &CandidateDetail{
		Name:      person.Name,
		Title:     person.StringProp("title"),
		Education: []CandidateEducation{},
		Projects:  []CandidateProject{},
	}

	detail.Skills, err = c.relatedNames(ctx, person.Uuid, types.RelHasSkill)
	if err != nil {
		return nil, err
	}

	studied, err := c.store.RelationshipsFrom(ctx, person.Uuid, types.RelStudiedAt)
	if err != nil {
		return nil, err
	}
	for _, rel := range studied {
		institution, err := c.store.GetNode(ctx, rel.TargetID)
		if err != nil || institution == nil {
			continue
		}
		detail.Education = append(detail.Education, CandidateEducation{
			Institution: institution.Name,
			Degree:      relProp(rel, "degree"),
			Year:        relProp(rel, "year"),
		})
	}

	worked, err := c.store.RelationshipsFrom(ctx, person.Uuid, types.RelWorkedOn)
	if err != nil {
		return nil, err
	}
	for _, rel := range worked {
		project, err := c.store.GetNode(ctx, rel.TargetID)
		if err != nil || project == nil {
			continue
		}
		technologies, err := c.relatedNames(ctx, project.Uuid, types.RelUsesTechnology)
		if err != nil {
			return nil, err
		}
		detail.Projects = append(detail.Projects, CandidateProject{
			Name:         project.Name,
			Role:         relProp(rel, "role"),
			Description:  project.StringProp("description"),
			Technologies: technologies,
		})
	}

	return detail, nil
}

// relatedNames resolves the names of the targets of every relType edge out of
// the given node, preserving edge order.
func (c *Client) relatedNames(ctx context.Context, sourceID string, relType types.RelType) ([]string, error) {
	rels, err := c.store.RelationshipsFrom(ctx, sourceID, relType)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rels))
	for _, rel := range rels {
		node, err := c.store.GetNode(ctx, rel.TargetID)
		if err != nil || node == nil {
			continue
		}
		names = append(names, node.Name)
	}
	return names, nil
}
