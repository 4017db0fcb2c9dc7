// Package normalize canonicalizes entity names so that differently-worded
// mentions of the same real-world entity map to one canonical key.
package normalize

import (
	"regexp"
	"strings"

	"github.com/talentgraph/talentgraph/pkg/types"
)

// Unknown is the sentinel returned for empty or absent names.
const Unknown = "unknown"

var (
	trailingComma = regexp.MustCompile(`,\s*[a-z\s]+$`)
	trailingParen = regexp.MustCompile(`\([a-z\s]+\)$`)
	versionSuffix = regexp.MustCompile(`\b([a-z]+)[\s\-]?\d+(\.\d+)?`)
	whitespace    = regexp.MustCompile(`\s+`)
)

var (
	institutionFillers  = []string{" the ", " of ", " & "}
	institutionSuffixes = []string{" university", " college", " institute", " school"}
	skillQualifiers     = []string{" programming", " language", " framework", " development"}
	projectDescriptors  = []string{" project", " system", " application", " platform"}
)

// EntityName returns the canonical key for an entity name. It is pure,
// deterministic, and idempotent: normalizing an already-normalized name is a
// no-op.
func EntityName(name string, label types.Label) string {
	if strings.TrimSpace(name) == "" {
		return Unknown
	}

	normalized := strings.TrimSpace(strings.ToLower(name))

	switch label {
	case types.LabelInstitution:
		normalized = trailingComma.ReplaceAllString(normalized, "")
		normalized = trailingParen.ReplaceAllString(normalized, "")
		for _, filler := range institutionFillers {
			normalized = strings.ReplaceAll(normalized, filler, " ")
		}
		for _, suffix := range institutionSuffixes {
			if strings.HasSuffix(normalized, suffix) {
				normalized = normalized[:len(normalized)-len(suffix)]
			}
		}
	case types.LabelSkill, types.LabelTechnology:
		normalized = versionSuffix.ReplaceAllString(normalized, "$1")
		for _, qualifier := range skillQualifiers {
			normalized = strings.ReplaceAll(normalized, qualifier, "")
		}
	case types.LabelProject:
		for _, descriptor := range projectDescriptors {
			normalized = strings.ReplaceAll(normalized, descriptor, "")
		}
	}

	normalized = whitespace.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
