package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/server/dto"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// stubATS returns one canned analysis for any resume and a fixed ranking.
type stubATS struct {
	analysis *types.ATSAnalysis
	ranked   string
}

func (s *stubATS) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*types.ATSAnalysis, error) {
	return s.analysis, nil
}

func (s *stubATS) RankCandidates(ctx context.Context, jobDescription string, scores []types.CandidateScore) (string, error) {
	return s.ranked, nil
}

func atsRouter(t *testing.T, ats talentgraph.ATSScorer, resumeDir string) *gin.Engine {
	t.Helper()
	client, err := talentgraph.New(talentgraph.Config{
		Store:  graph.NewMemoryStore(),
		ATS:    ats,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	handler := NewATSHandler(client, resumeDir)
	router := gin.New()
	router.POST("/api/v1/ats/analyze", handler.Analyze)
	router.POST("/api/v1/ats/score", handler.Score)
	return router
}

func TestATSScoreReturnsAnalysis(t *testing.T) {
	router := atsRouter(t, &stubATS{
		analysis: &types.ATSAnalysis{ATSScore: 82, MatchingKeywords: []string{"Go"}},
	}, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ats/score",
		strings.NewReader(`{"job_description": "Go engineer", "resume_text": "resume"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ATSAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 82, resp.ATSScore)
	assert.Equal(t, []string{"Go"}, resp.MatchingKeywords)
}

func TestATSScoreRejectsMissingFields(t *testing.T) {
	router := atsRouter(t, &stubATS{analysis: &types.ATSAnalysis{}}, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ats/score",
		strings.NewReader(`{"job_description": "Go engineer"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestATSAnalyzeRanksCandidates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.txt"), []byte("alice resume"), 0o644))

	ats := &stubATS{analysis: &types.ATSAnalysis{ATSScore: 82}, ranked: "1. Alice Smith"}
	client, err := talentgraph.New(talentgraph.Config{
		Store:  graph.NewMemoryStore(),
		ATS:    ats,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	require.NoError(t, client.BuildGraph(context.Background(),
		&types.ResumeRecord{Person: types.PersonInfo{Name: "Alice Smith"}}, "alice.txt"))

	handler := NewATSHandler(client, dir)
	router := gin.New()
	router.POST("/api/v1/ats/analyze", handler.Analyze)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ats/analyze",
		strings.NewReader(`{"job_description": "Go engineer"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ATSAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1. Alice Smith", resp.Results)
}

func TestATSAnalyzeWithoutScorerIsUnavailable(t *testing.T) {
	client := newTestClient(t, &stubExtractor{})
	handler := NewATSHandler(client, t.TempDir())
	router := gin.New()
	router.POST("/api/v1/ats/analyze", handler.Analyze)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ats/analyze",
		strings.NewReader(`{"job_description": "Go engineer"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
