package types

// Document is one sentence of the retrievable corpus projected from the graph.
type Document struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Corpus categories written into document metadata under "entity_type".
const (
	CategoryPerson               = "Person"
	CategorySkills               = "Skills"
	CategoryEducation            = "Education"
	CategoryProject              = "Project"
	CategoryProjectConnection    = "ProjectConnection"
	CategoryTechnologies         = "Technologies"
	CategoryTechnologyConnection = "TechnologyConnection"
	CategoryConnection           = "Connection"
)

// NewDocument creates a corpus document tagged with its graph category.
func NewDocument(text, category string) Document {
	return Document{
		Text: text,
		Metadata: map[string]string{
			"source":      "knowledge_graph",
			"entity_type": category,
		},
	}
}

// QueryEntities holds the entities recognized in a user question, used to
// steer retrieval and targeted graph lookups.
type QueryEntities struct {
	Institutions []string `json:"institutions"`
	Skills       []string `json:"skills"`
	Projects     []string `json:"projects"`
	Technologies []string `json:"technologies"`
	Names        []string `json:"names"`
}
