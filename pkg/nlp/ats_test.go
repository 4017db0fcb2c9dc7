package nlp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/talentgraph/pkg/types"
)

func TestScoreResumeParsesFencedAnalysis(t *testing.T) {
	client := &fakeClient{responses: []string{"```json\n" + `{
		"ats_score": 82,
		"keyword_match_rate": 74.5,
		"missing_keywords": ["Kubernetes"],
		"matching_keywords": ["Go", "PostgreSQL"],
		"recommendations": ["Mention container orchestration experience"]
	}` + "\n```"}}

	analysis, err := NewATSAnalyzer(client).ScoreResume(context.Background(), "resume text", "job description")
	require.NoError(t, err)
	assert.Equal(t, 82, analysis.ATSScore)
	assert.InDelta(t, 74.5, analysis.KeywordMatchRate, 0.001)
	assert.Equal(t, []string{"Kubernetes"}, analysis.MissingKeywords)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, analysis.MatchingKeywords)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "job description")
	assert.Contains(t, client.prompts[0], "resume text")
}

func TestScoreResumeRepairsMalformedJSON(t *testing.T) {
	client := &fakeClient{responses: []string{`{ats_score: 60, "keyword_match_rate": 50,}`}}

	analysis, err := NewATSAnalyzer(client).ScoreResume(context.Background(), "resume", "job")
	require.NoError(t, err)
	assert.Equal(t, 60, analysis.ATSScore)
}

func TestScoreResumePropagatesClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("model unavailable")}

	_, err := NewATSAnalyzer(client).ScoreResume(context.Background(), "resume", "job")
	assert.ErrorContains(t, err, "ats scoring failed")
}

func TestRankCandidatesIncludesScoresInPrompt(t *testing.T) {
	client := &fakeClient{responses: []string{"1. Alice Smith (82)\n2. Bob Jones (61)"}}

	scores := []types.CandidateScore{
		{Name: "Alice Smith", Analysis: &types.ATSAnalysis{ATSScore: 82}},
		{Name: "Bob Jones", Analysis: &types.ATSAnalysis{ATSScore: 61}},
	}
	summary, err := NewATSAnalyzer(client).RankCandidates(context.Background(), "Senior Go engineer", scores)
	require.NoError(t, err)
	assert.Contains(t, summary, "Alice Smith")

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Senior Go engineer")
	assert.Contains(t, client.prompts[0], `"name": "Alice Smith"`)
	assert.Contains(t, client.prompts[0], `"ats_score": 82`)
}
