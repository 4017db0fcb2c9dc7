package nlp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentgraph/talentgraph/pkg/types"
)

const atsScorePrompt = `Act as an ATS (Applicant Tracking System) analyzer. Compare the resume against the job description
and provide a detailed analysis in JSON format with the following structure:
{
    "ats_score": <score between 0-100>,
    "keyword_match_rate": <percentage of key terms found>,
    "missing_keywords": [<important keywords from job description not found in resume>],
    "matching_keywords": [<keywords found in both>],
    "recommendations": [<specific suggestions for improvement>]
}

Job Description:
%s

Resume Text:
%s

Base your analysis on:
1. Keyword matching and relevance
2. Required skills coverage
3. Experience alignment
4. Overall role fit

Return only valid JSON.`

const atsRankPrompt = `Analyze these ATS results and provide a clear summary ranking the candidates.
Focus on their match with the job requirements and specific strengths/weaknesses.

Job Description:
%s

ATS Results:
%s

Provide:
1. Ranked list of candidates by ATS score (0-100).
2. Key strengths and gaps for each candidate.`

// ATSAnalyzer scores resumes against job descriptions and ranks the scored
// candidates, both via the language model.
type ATSAnalyzer struct {
	client Client
}

// NewATSAnalyzer creates an analyzer backed by the given client.
func NewATSAnalyzer(client Client) *ATSAnalyzer {
	return &ATSAnalyzer{client: client}
}

// ScoreResume scores one resume text against a job description.
func (a *ATSAnalyzer) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*types.ATSAnalysis, error) {
	resp, err := a.client.Chat(ctx, []Message{
		NewUserMessage(fmt.Sprintf(atsScorePrompt, jobDescription, resumeText)),
	})
	if err != nil {
		return nil, fmt.Errorf("ats scoring failed: %w", err)
	}

	analysis, err := types.ParseATSAnalysis(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ats analysis: %w", err)
	}
	return analysis, nil
}

// RankCandidates summarizes the per-candidate analyses into a ranked report.
func (a *ATSAnalyzer) RankCandidates(ctx context.Context, jobDescription string, scores []types.CandidateScore) (string, error) {
	encoded, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode ats results: %w", err)
	}

	resp, err := a.client.Chat(ctx, []Message{
		NewUserMessage(fmt.Sprintf(atsRankPrompt, jobDescription, string(encoded))),
	})
	if err != nil {
		return "", fmt.Errorf("ats ranking failed: %w", err)
	}
	return resp.Content, nil
}
