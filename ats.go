package talentgraph

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/talentgraph/talentgraph/pkg/telemetry"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// noResumesMessage is returned when no candidate in the graph has a readable
// resume file to score.
const noResumesMessage = "No resumes found in the system to analyze."

// ScoreResume scores one resume text against a job description.
func (c *Client) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*types.ATSAnalysis, error) {
	if c.ats == nil {
		return nil, ErrATSUnavailable
	}
	return c.ats.ScoreResume(ctx, resumeText, jobDescription)
}

// AnalyzeCandidates scores every candidate with a stored resume file against
// the job description and returns a ranked summary. Candidates whose resume
// file is missing or whose scoring fails are skipped with a warning so one
// bad file never aborts the run.
func (c *Client) AnalyzeCandidates(ctx context.Context, resumeDir, jobDescription string) (string, error) {
	if c.ats == nil {
		return "", ErrATSUnavailable
	}

	start := time.Now()
	summary, err := c.analyzeCandidates(ctx, resumeDir, jobDescription)
	c.telemetry.Record(telemetry.StageATS, "", time.Since(start), err)
	return summary, err
}

func (c *Client) analyzeCandidates(ctx context.Context, resumeDir, jobDescription string) (string, error) {
	persons, err := c.store.NodesByLabel(ctx, types.LabelPerson)
	if err != nil {
		return "", err
	}

	var scores []types.CandidateScore
	for _, person := range persons {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		file := person.StringProp("resume_file")
		if file == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(resumeDir, file))
		if err != nil {
			c.logger.Warn("resume file unreadable, skipping candidate",
				"person", person.Name, "file", file, "error", err)
			continue
		}

		analysis, err := c.ats.ScoreResume(ctx, string(data), jobDescription)
		if err != nil {
			c.logger.Warn("ats scoring failed, skipping candidate",
				"person", person.Name, "error", err)
			continue
		}
		scores = append(scores, types.CandidateScore{Name: person.Name, Analysis: analysis})
	}

	if len(scores) == 0 {
		return noResumesMessage, nil
	}
	return c.ats.RankCandidates(ctx, jobDescription, scores)
}
