package types

import (
	"encoding/json"
	"errors"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"
)

// ErrEmptyRecord is returned when an extracted record carries no usable sections.
var ErrEmptyRecord = errors.New("extracted record is empty")

// ResumeRecord is the structured output of entity extraction over one resume.
// All sections are optional; the builder skips whatever is absent.
type ResumeRecord struct {
	Person     PersonInfo   `json:"Person"`
	Contact    *ContactInfo `json:"Contact,omitempty"`
	Skills     []string     `json:"Skills,omitempty"`
	Education  []Education  `json:"Education,omitempty"`
	Projects   []Project    `json:"Projects,omitempty"`
	Experience []Experience `json:"Experience,omitempty"`

	// projectsListed records that the Projects key was present in the
	// decoded JSON, even if the list was empty. An explicitly empty list
	// suppresses Experience promotion; an absent key does not.
	projectsListed bool
}

// UnmarshalJSON decodes a record while tracking presence of the Projects key.
func (r *ResumeRecord) UnmarshalJSON(data []byte) error {
	type alias ResumeRecord
	aux := struct {
		*alias
		Projects *[]Project `json:"Projects"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Projects != nil {
		r.Projects = *aux.Projects
		r.projectsListed = true
	}
	return nil
}

// PersonInfo holds the resume owner's identity.
type PersonInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// ContactInfo holds leaf contact attributes.
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Education is one entry of the education section.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// Project is one entry of the projects section.
type Project struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Technologies []string `json:"technologies,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// Experience is one entry of the experience section. Records without an
// explicit Projects section promote each experience entry to a project.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description,omitempty"`
}

// ProjectEntries returns the project list the graph builder should ingest.
// When the Projects section is absent, each Experience entry is promoted to a
// project with no technologies; these are mined from the description
// downstream. A present-but-empty Projects section means the resume genuinely
// lists no projects, so nothing is promoted.
func (r *ResumeRecord) ProjectEntries() []Project {
	if len(r.Projects) > 0 || r.projectsListed {
		return r.Projects
	}
	projects := make([]Project, 0, len(r.Experience))
	for _, exp := range r.Experience {
		name := exp.Company
		if name == "" {
			name = "Unknown Project"
		}
		projects = append(projects, Project{
			Name:        name,
			Role:        exp.Role,
			Description: exp.Description,
		})
	}
	return projects
}

// Empty reports whether the record carries nothing the builder could ingest.
func (r *ResumeRecord) Empty() bool {
	return r.Person.Name == "" &&
		r.Contact == nil &&
		len(r.Skills) == 0 &&
		len(r.Education) == 0 &&
		len(r.Projects) == 0 &&
		len(r.Experience) == 0
}

// ParseResumeRecord decodes an LLM-produced JSON payload into a ResumeRecord.
// Markdown code fences are stripped and the JSON is repaired before decoding,
// since models routinely emit trailing commas or fenced output.
func ParseResumeRecord(raw string) (*ResumeRecord, error) {
	cleaned := StripCodeFences(raw)
	if repaired, err := jsonrepair.JSONRepair(cleaned); err == nil {
		cleaned = repaired
	}

	var record ResumeRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return nil, err
	}
	if record.Empty() {
		return nil, ErrEmptyRecord
	}
	return &record, nil
}

// StripCodeFences removes a surrounding markdown code fence from LLM output.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}
