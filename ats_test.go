package talentgraph

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// fakeATS serves canned analyses keyed by resume text and records what it
// was asked to rank.
type fakeATS struct {
	analyses   map[string]*types.ATSAnalysis
	ranked     string
	lastJob    string
	lastScores []types.CandidateScore
}

func (f *fakeATS) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*types.ATSAnalysis, error) {
	if analysis, ok := f.analyses[resumeText]; ok {
		return analysis, nil
	}
	return nil, errors.New("no analysis for resume")
}

func (f *fakeATS) RankCandidates(ctx context.Context, jobDescription string, scores []types.CandidateScore) (string, error) {
	f.lastJob = jobDescription
	f.lastScores = scores
	return f.ranked, nil
}

func newATSClient(t *testing.T, store graph.Store, ats ATSScorer) *Client {
	t.Helper()
	client, err := New(Config{
		Store:  store,
		ATS:    ats,
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	return client
}

func addCandidate(t *testing.T, store graph.Store, dir, name, file, resumeText string) {
	t.Helper()
	props := map[string]any{}
	if file != "" {
		props["resume_file"] = file
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(resumeText), 0o644))
	}
	require.NoError(t, store.CreateNode(context.Background(), types.NewNode(types.LabelPerson, name, props)))
}

func TestScoreResumeRequiresScorer(t *testing.T) {
	client := newTestClient(t, graph.NewMemoryStore(), nil, nil)

	_, err := client.ScoreResume(context.Background(), "resume", "job")
	assert.ErrorIs(t, err, ErrATSUnavailable)

	_, err = client.AnalyzeCandidates(context.Background(), t.TempDir(), "job")
	assert.ErrorIs(t, err, ErrATSUnavailable)
}

func TestAnalyzeCandidatesRanksScoredCandidates(t *testing.T) {
	store := graph.NewMemoryStore()
	dir := t.TempDir()
	addCandidate(t, store, dir, "Alice Smith", "alice.txt", "alice resume")
	addCandidate(t, store, dir, "Bob Jones", "bob.txt", "bob resume")

	ats := &fakeATS{
		analyses: map[string]*types.ATSAnalysis{
			"alice resume": {ATSScore: 82},
			"bob resume":   {ATSScore: 61},
		},
		ranked: "1. Alice Smith\n2. Bob Jones",
	}
	client := newATSClient(t, store, ats)

	summary, err := client.AnalyzeCandidates(context.Background(), dir, "Senior Go engineer")
	require.NoError(t, err)
	assert.Equal(t, "1. Alice Smith\n2. Bob Jones", summary)

	assert.Equal(t, "Senior Go engineer", ats.lastJob)
	require.Len(t, ats.lastScores, 2)
	assert.Equal(t, "Alice Smith", ats.lastScores[0].Name)
	assert.Equal(t, 82, ats.lastScores[0].Analysis.ATSScore)
}

func TestAnalyzeCandidatesSkipsUnscorableCandidates(t *testing.T) {
	store := graph.NewMemoryStore()
	dir := t.TempDir()
	addCandidate(t, store, dir, "Alice Smith", "alice.txt", "alice resume")
	// No resume_file property.
	addCandidate(t, store, dir, "Bob Jones", "", "")
	// Stored reference to a file that was never written.
	require.NoError(t, store.CreateNode(context.Background(),
		types.NewNode(types.LabelPerson, "Carol White", map[string]any{"resume_file": "carol.txt"})))

	ats := &fakeATS{
		analyses: map[string]*types.ATSAnalysis{"alice resume": {ATSScore: 75}},
		ranked:   "1. Alice Smith",
	}
	client := newATSClient(t, store, ats)

	summary, err := client.AnalyzeCandidates(context.Background(), dir, "job")
	require.NoError(t, err)
	assert.Equal(t, "1. Alice Smith", summary)
	require.Len(t, ats.lastScores, 1)
	assert.Equal(t, "Alice Smith", ats.lastScores[0].Name)
}

func TestAnalyzeCandidatesReportsEmptyGraph(t *testing.T) {
	client := newATSClient(t, graph.NewMemoryStore(), &fakeATS{})

	summary, err := client.AnalyzeCandidates(context.Background(), t.TempDir(), "job")
	require.NoError(t, err)
	assert.Equal(t, "No resumes found in the system to analyze.", summary)
}
