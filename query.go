package talentgraph

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/talentgraph/talentgraph/pkg/normalize"
	"github.com/talentgraph/talentgraph/pkg/retrieval"
	"github.com/talentgraph/talentgraph/pkg/telemetry"
	"github.com/talentgraph/talentgraph/pkg/types"
	"gopkg.in/yaml.v3"
)

//go:embed synonyms.yaml
var synonymsYAML []byte

// capitalizedName matches capitalized word sequences, used to recover person
// names the entity extractor missed.
var capitalizedName = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// workVerbs gate the project-by-person lookup: without one of these in the
// query, person names alone do not trigger it.
var workVerbs = []string{"project", "worked on", "developed", "created", "built"}

// skillSynonyms is the bidirectional expansion table loaded from the
// embedded YAML.
var skillSynonyms = loadSynonyms()

func loadSynonyms() map[string]string {
	oneWay := map[string]string{}
	if err := yaml.Unmarshal(synonymsYAML, &oneWay); err != nil {
		return map[string]string{}
	}
	both := make(map[string]string, 2*len(oneWay))
	for from, to := range oneWay {
		both[from] = to
		if _, ok := both[to]; !ok {
			both[to] = from
		}
	}
	return both
}

// Answer runs the full question-answering pipeline: query-entity
// extraction, name recovery, synonym expansion, query rewriting, hybrid
// retrieval, targeted graph lookups, and answer generation. Failures yield
// a textual error message rather than an error return.
func (c *Client) Answer(ctx context.Context, query string, retriever *retrieval.HybridRetriever) string {
	start := time.Now()
	answer, err := c.answer(ctx, query, retriever)
	c.telemetry.Record(telemetry.StageQuery, "", time.Since(start), err)
	if err != nil {
		return fmt.Sprintf("Error processing query: %s", err)
	}
	return answer
}

func (c *Client) answer(ctx context.Context, query string, retriever *retrieval.HybridRetriever) (string, error) {
	entities := c.queryEntities(ctx, query)

	enhanced := rewriteQuery(query, entities)
	docs := retriever.Retrieve(ctx, enhanced)

	extra, err := c.targetedLookups(ctx, query, entities)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, doc := range docs {
		parts = append(parts, doc.Text)
	}
	parts = append(parts, extra...)
	contextBlock := strings.Join(parts, "\n")

	if strings.TrimSpace(contextBlock) == "" && containsAny(strings.ToLower(query), "project", "worked on") {
		fallback, err := c.projectFallback(ctx)
		if err != nil {
			return "", err
		}
		contextBlock += fallback
	}

	return c.generator.Answer(ctx, query, contextBlock)
}

// queryEntities extracts and normalizes entities from the query, recovers
// capitalized names, and expands skills/technologies with synonyms.
func (c *Client) queryEntities(ctx context.Context, query string) types.QueryEntities {
	var raw types.QueryEntities
	if c.extractor != nil {
		raw = c.extractor.QueryEntities(ctx, query)
	}

	entities := types.QueryEntities{
		Institutions: normalizeAll(raw.Institutions, types.LabelInstitution),
		Skills:       normalizeAll(raw.Skills, types.LabelSkill),
		Projects:     normalizeAll(raw.Projects, types.LabelProject),
		Technologies: normalizeAll(raw.Technologies, types.LabelTechnology),
		Names:        raw.Names, // person names are never normalized
	}

	for _, name := range capitalizedName.FindAllString(query, -1) {
		if !containsFold(entities.Names, name) {
			entities.Names = append(entities.Names, name)
		}
	}

	entities.Skills = expandSynonyms(entities.Skills)
	entities.Technologies = expandSynonyms(entities.Technologies)
	return entities
}

func normalizeAll(names []string, label types.Label) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, normalize.EntityName(name, label))
	}
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// expandSynonyms adds the mapped form of every entry present in the synonym
// table, preserving the original entries and order.
func expandSynonyms(entries []string) []string {
	out := append([]string(nil), entries...)
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		seen[entry] = struct{}{}
	}
	for _, entry := range entries {
		if mapped, ok := skillSynonyms[entry]; ok {
			if _, dup := seen[mapped]; !dup {
				out = append(out, mapped)
				seen[mapped] = struct{}{}
			}
		}
	}
	return out
}

// rewriteQuery appends normalized entity lists under labeled sections to
// sharpen retrieval.
func rewriteQuery(query string, entities types.QueryEntities) string {
	enhanced := query
	if len(entities.Institutions) > 0 {
		enhanced += " Institutions: " + strings.Join(entities.Institutions, ", ")
	}
	if len(entities.Skills) > 0 {
		enhanced += " Skills: " + strings.Join(entities.Skills, ", ")
	}
	if len(entities.Technologies) > 0 {
		enhanced += " Technologies: " + strings.Join(entities.Technologies, ", ")
	}
	if len(entities.Projects) > 0 {
		enhanced += " Projects: " + strings.Join(entities.Projects, ", ")
	}
	if len(entities.Names) > 0 {
		enhanced += " Names: " + strings.Join(entities.Names, ", ")
	}
	return enhanced
}

// targetedLookups runs the gated structured queries and renders their rows
// as extra context sentences.
func (c *Client) targetedLookups(ctx context.Context, query string, entities types.QueryEntities) ([]string, error) {
	var extra []string
	lowerQuery := strings.ToLower(query)

	patterns := nameTokens(entities.Names)
	if len(patterns) == 0 && containsAny(lowerQuery, "has", "does", "by", "of") {
		recovered, err := c.namesFromGraph(ctx, lowerQuery)
		if err != nil {
			return nil, err
		}
		patterns = recovered
	}

	if len(patterns) > 0 && containsAny(lowerQuery, workVerbs...) {
		lines, err := c.projectsByPerson(ctx, patterns)
		if err != nil {
			return nil, err
		}
		extra = append(extra, lines...)
	}

	combined := append(append([]string(nil), entities.Skills...), entities.Technologies...)
	if len(combined) > 0 {
		lines, err := c.skillHolders(ctx, combined)
		if err != nil {
			return nil, err
		}
		extra = append(extra, lines...)
	}

	if len(entities.Institutions) > 0 {
		lines, err := c.institutionAlumni(ctx, entities.Institutions)
		if err != nil {
			return nil, err
		}
		extra = append(extra, lines...)
	}

	if len(entities.Names) > 0 {
		lines, err := c.personConnections(ctx, nameTokens(entities.Names))
		if err != nil {
			return nil, err
		}
		extra = append(extra, lines...)
	}

	if len(entities.Projects) > 0 {
		lines, err := c.projectsByName(ctx, entities.Projects)
		if err != nil {
			return nil, err
		}
		extra = append(extra, lines...)
	}

	return extra, nil
}

// nameTokens returns the lower-cased name parts longer than 3 characters,
// used as case-insensitive substring patterns.
func nameTokens(names []string) []string {
	var tokens []string
	for _, name := range names {
		for _, part := range strings.Fields(strings.ToLower(name)) {
			if len(part) > 3 {
				tokens = append(tokens, part)
			}
		}
	}
	return tokens
}

// namesFromGraph scans the stored person names for parts mentioned in the
// query, recovering a subject when the extractor found no names at all.
func (c *Client) namesFromGraph(ctx context.Context, lowerQuery string) ([]string, error) {
	persons, err := c.store.NodesByLabel(ctx, types.LabelPerson)
	if err != nil {
		return nil, err
	}
	var tokens []string
	for _, person := range persons {
		for _, part := range strings.Fields(strings.ToLower(person.Name)) {
			if len(part) > 3 && strings.Contains(lowerQuery, part) {
				tokens = append(tokens, part)
				break
			}
		}
	}
	return tokens, nil
}

func (c *Client) matchPersons(ctx context.Context, patterns []string) ([]*types.Node, error) {
	persons, err := c.store.NodesByLabel(ctx, types.LabelPerson)
	if err != nil {
		return nil, err
	}
	var matched []*types.Node
	for _, person := range persons {
		lower := strings.ToLower(person.Name)
		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				matched = append(matched, person)
				break
			}
		}
	}
	return matched, nil
}

func (c *Client) projectsByPerson(ctx context.Context, patterns []string) ([]string, error) {
	matched, err := c.matchPersons(ctx, patterns)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, person := range matched {
		rels, err := c.store.RelationshipsFrom(ctx, person.Uuid, types.RelWorkedOn)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			project, err := c.store.GetNode(ctx, rel.TargetID)
			if err != nil {
				return nil, err
			}
			if project == nil {
				continue
			}
			line := fmt.Sprintf("%s worked on project '%s' as %s.", person.Name, project.Name, relProp(rel, "role"))
			if desc := project.StringProp("description"); desc != "" {
				line += " Description: " + desc
			}
			lines = append(lines, line)

			technologies, err := c.projectTechnologies(ctx, project)
			if err != nil {
				return nil, err
			}
			if len(technologies) > 0 {
				lines = append(lines, fmt.Sprintf("Project '%s' uses: %s", project.Name, strings.Join(technologies, ", ")))
			}
		}
	}
	if len(lines) > 0 {
		return lines, nil
	}

	// No WORKED_ON edges. If the person exists, surface whatever project-
	// shaped neighbors they do have; otherwise stay silent.
	for _, person := range matched {
		neighbors, err := c.projectNeighbors(ctx, person)
		if err != nil {
			return nil, err
		}
		if len(neighbors) > 0 {
			lines = append(lines, neighbors...)
		} else {
			lines = append(lines, fmt.Sprintf("No project information found for %s in the knowledge graph.", person.Name))
		}
		break
	}
	return lines, nil
}

func (c *Client) projectTechnologies(ctx context.Context, project *types.Node) ([]string, error) {
	rels, err := c.store.RelationshipsFrom(ctx, project.Uuid, types.RelUsesTechnology)
	if err != nil {
		return nil, err
	}
	var technologies []string
	for _, rel := range rels {
		tech, err := c.store.GetNode(ctx, rel.TargetID)
		if err != nil {
			return nil, err
		}
		if tech != nil {
			technologies = append(technologies, tech.Name)
		}
	}
	return technologies, nil
}

func (c *Client) projectNeighbors(ctx context.Context, person *types.Node) ([]string, error) {
	rels, err := c.store.RelationshipsInvolving(ctx, person.Uuid)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, rel := range rels {
		otherID := rel.SourceID
		if otherID == person.Uuid {
			otherID = rel.TargetID
		}
		other, err := c.store.GetNode(ctx, otherID)
		if err != nil {
			return nil, err
		}
		if other == nil || other.Label != types.LabelProject {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s is connected to %s '%s'", person.Name, other.Label, other.Name))
	}
	return lines, nil
}

// skillHolders ranks people by how many of the requested skills they hold,
// descending, limited to 5.
func (c *Client) skillHolders(ctx context.Context, requested []string) ([]string, error) {
	persons, err := c.store.NodesByLabel(ctx, types.LabelPerson)
	if err != nil {
		return nil, err
	}

	type holder struct {
		person  *types.Node
		matched []string
	}
	var holders []holder
	for _, person := range persons {
		rels, err := c.store.RelationshipsFrom(ctx, person.Uuid, types.RelHasSkill)
		if err != nil {
			return nil, err
		}
		var matched []string
		for _, rel := range rels {
			skill, err := c.store.GetNode(ctx, rel.TargetID)
			if err != nil {
				return nil, err
			}
			if skill == nil {
				continue
			}
			lower := strings.ToLower(skill.Name)
			for _, want := range requested {
				if strings.Contains(lower, strings.ToLower(want)) {
					matched = append(matched, skill.Name)
					break
				}
			}
		}
		if len(matched) > 0 {
			holders = append(holders, holder{person: person, matched: matched})
		}
	}

	sort.SliceStable(holders, func(a, b int) bool {
		return len(holders[a].matched) > len(holders[b].matched)
	})
	if len(holders) > 5 {
		holders = holders[:5]
	}

	lines := make([]string, len(holders))
	for i, h := range holders {
		lines[i] = fmt.Sprintf("%s (%s) has the following requested skills: %s",
			h.person.Name, h.person.StringProp("title"), strings.Join(h.matched, ", "))
	}
	return lines, nil
}

// institutionAlumni lists people who studied at a mentioned institution,
// limited to 5.
func (c *Client) institutionAlumni(ctx context.Context, institutions []string) ([]string, error) {
	rels, err := c.store.RelationshipsByType(ctx, types.RelStudiedAt)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, rel := range rels {
		if len(lines) >= 5 {
			break
		}
		institution, err := c.store.GetNode(ctx, rel.TargetID)
		if err != nil {
			return nil, err
		}
		if institution == nil {
			continue
		}
		lower := strings.ToLower(institution.Name)
		match := false
		for _, want := range institutions {
			if strings.Contains(lower, strings.ToLower(want)) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		person, err := c.store.GetNode(ctx, rel.SourceID)
		if err != nil {
			return nil, err
		}
		if person == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s studied %s at %s (%s)",
			person.Name, relProp(rel, "degree"), institution.Name, relProp(rel, "year")))
	}
	return lines, nil
}

// personConnections lists relationships between people when a person is
// mentioned, any relationship type, limited to 10.
func (c *Client) personConnections(ctx context.Context, patterns []string) ([]string, error) {
	matched, err := c.matchPersons(ctx, patterns)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var lines []string
	for _, person := range matched {
		rels, err := c.store.RelationshipsInvolving(ctx, person.Uuid)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			if len(lines) >= 10 {
				return lines, nil
			}
			if _, dup := seen[rel.Uuid]; dup {
				continue
			}
			p1, err := c.store.GetNode(ctx, rel.SourceID)
			if err != nil {
				return nil, err
			}
			p2, err := c.store.GetNode(ctx, rel.TargetID)
			if err != nil {
				return nil, err
			}
			if p1 == nil || p2 == nil || p1.Label != types.LabelPerson || p2.Label != types.LabelPerson {
				continue
			}
			seen[rel.Uuid] = struct{}{}
			lines = append(lines, fmt.Sprintf("%s %s %s", p1.Name, humanizeRelType(rel.Type), p2.Name))
		}
	}
	return lines, nil
}

// projectsByName lists who worked on a mentioned project, limited to 5.
func (c *Client) projectsByName(ctx context.Context, projects []string) ([]string, error) {
	rels, err := c.store.RelationshipsByType(ctx, types.RelWorkedOn)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, rel := range rels {
		if len(lines) >= 5 {
			break
		}
		project, err := c.store.GetNode(ctx, rel.TargetID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			continue
		}
		lower := strings.ToLower(project.Name)
		match := false
		for _, want := range projects {
			if strings.Contains(lower, strings.ToLower(want)) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		person, err := c.store.GetNode(ctx, rel.SourceID)
		if err != nil {
			return nil, err
		}
		if person == nil {
			continue
		}
		line := fmt.Sprintf("%s worked on project '%s' as %s", person.Name, project.Name, relProp(rel, "role"))
		if desc := project.StringProp("description"); desc != "" {
			line += ". Description: " + desc
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// projectFallback lists up to 10 person/project/description triples when
// retrieval found nothing for a project query.
func (c *Client) projectFallback(ctx context.Context) (string, error) {
	rels, err := c.store.RelationshipsByType(ctx, types.RelWorkedOn)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	count := 0
	for _, rel := range rels {
		if count >= 10 {
			break
		}
		person, err := c.store.GetNode(ctx, rel.SourceID)
		if err != nil {
			return "", err
		}
		project, err := c.store.GetNode(ctx, rel.TargetID)
		if err != nil {
			return "", err
		}
		if person == nil || project == nil {
			continue
		}
		if count == 0 {
			b.WriteString("\nHere are some projects from the knowledge graph:\n")
		}
		desc := project.StringProp("description")
		if desc == "" {
			desc = "No description available"
		}
		b.WriteString(fmt.Sprintf("%s worked on %s. %s\n", person.Name, project.Name, desc))
		count++
	}
	return b.String(), nil
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
