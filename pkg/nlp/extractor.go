package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kaptinlin/jsonrepair"
	"github.com/talentgraph/talentgraph/pkg/types"
)

const resumeExtractionPrompt = `Extract information in JSON format following this schema:
{
    "Person": {"name": "", "title": ""},
    "Contact": {"email": "", "phone": ""},
    "Skills": ["skill1", "skill2"],
    "Education": [{"degree": "", "institution": "", "year": ""}],
    "Projects": [{"name": "", "role": "", "technologies": [], "description": ""}]
}

Extract structured information from this resume:

%s

Return only valid JSON.`

const technologiesPrompt = `Extract all technologies, programming languages, frameworks, and tools mentioned in the text.
Return only a JSON array of strings.

Text: %s`

const queryEntitiesPrompt = `Extract entities from this query about resumes or job candidates. Return JSON with these fields:
{
  "institutions": [],
  "skills": [],
  "projects": [],
  "technologies": [],
  "names": []
}

"institutions" are universities, colleges, and similar. "names" are names of people mentioned.

Query: "%s"`

// Extractor turns raw resume text and user queries into structured entities
// via the language model. Technology and query-entity extraction degrade to
// empty results on failure so a flaky model never aborts a pipeline run.
type Extractor struct {
	client Client
	logger *slog.Logger
}

// NewExtractor creates an extractor backed by the given client.
func NewExtractor(client Client, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{client: client, logger: logger}
}

// ExtractResume extracts a structured record from raw resume text.
func (e *Extractor) ExtractResume(ctx context.Context, text string) (*types.ResumeRecord, error) {
	resp, err := e.client.Chat(ctx, []Message{
		NewUserMessage(fmt.Sprintf(resumeExtractionPrompt, text)),
	})
	if err != nil {
		return nil, fmt.Errorf("resume extraction failed: %w", err)
	}

	record, err := types.ParseResumeRecord(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extraction output: %w", err)
	}
	return record, nil
}

// Technologies extracts technology names from a project description. Returns
// an empty slice when the model call or decoding fails.
func (e *Extractor) Technologies(ctx context.Context, description string) []string {
	if description == "" {
		return nil
	}

	resp, err := e.client.Chat(ctx, []Message{
		NewUserMessage(fmt.Sprintf(technologiesPrompt, description)),
	})
	if err != nil {
		e.logger.Warn("technology extraction failed", "error", err)
		return nil
	}

	raw := types.StripCodeFences(resp.Content)
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		e.logger.Warn("technology extraction returned unusable JSON", "error", err)
		return nil
	}

	var technologies []string
	if err := json.Unmarshal([]byte(repaired), &technologies); err == nil {
		return technologies
	}

	// Some models wrap the array in an object.
	var wrapped struct {
		Technologies []string `json:"technologies"`
	}
	if err := json.Unmarshal([]byte(repaired), &wrapped); err == nil {
		return wrapped.Technologies
	}

	e.logger.Warn("technology extraction returned unexpected shape")
	return nil
}

// QueryEntities recognizes entity names mentioned in a user query. Returns a
// zero value when the model call or decoding fails.
func (e *Extractor) QueryEntities(ctx context.Context, query string) types.QueryEntities {
	var entities types.QueryEntities

	resp, err := e.client.Chat(ctx, []Message{
		NewUserMessage(fmt.Sprintf(queryEntitiesPrompt, query)),
	})
	if err != nil {
		e.logger.Warn("query entity extraction failed", "error", err)
		return entities
	}

	raw := types.StripCodeFences(resp.Content)
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		e.logger.Warn("query entity extraction returned unusable JSON", "error", err)
		return entities
	}

	if err := json.Unmarshal([]byte(repaired), &entities); err != nil {
		e.logger.Warn("query entity extraction returned unexpected shape", "error", err)
		return types.QueryEntities{}
	}
	return entities
}
