package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubExtractor returns one canned record for any resume text.
type stubExtractor struct {
	record   *types.ResumeRecord
	entities types.QueryEntities
}

func (s *stubExtractor) ExtractResume(ctx context.Context, text string) (*types.ResumeRecord, error) {
	if s.record != nil {
		return s.record, nil
	}
	return nil, types.ErrEmptyRecord
}

func (s *stubExtractor) Technologies(ctx context.Context, description string) []string {
	return nil
}

func (s *stubExtractor) QueryEntities(ctx context.Context, query string) types.QueryEntities {
	return s.entities
}

// stubGenerator echoes the retrieved context.
type stubGenerator struct{}

func (stubGenerator) Answer(ctx context.Context, query, retrieved string) (string, error) {
	return "context: " + retrieved, nil
}

func newTestClient(t *testing.T, extractor talentgraph.ResumeExtractor) *talentgraph.Client {
	t.Helper()
	client, err := talentgraph.New(talentgraph.Config{
		Store:     graph.NewMemoryStore(),
		Extractor: extractor,
		Generator: stubGenerator{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return client
}
