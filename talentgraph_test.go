package talentgraph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// fakeExtractor serves canned records keyed by resume text. Unknown text
// yields extractErr when set, otherwise ErrEmptyRecord.
type fakeExtractor struct {
	records      map[string]*types.ResumeRecord
	extractErr   error
	entities     types.QueryEntities
	technologies []string
}

func (f *fakeExtractor) ExtractResume(ctx context.Context, text string) (*types.ResumeRecord, error) {
	if record, ok := f.records[text]; ok {
		return record, nil
	}
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return nil, types.ErrEmptyRecord
}

func (f *fakeExtractor) Technologies(ctx context.Context, description string) []string {
	return f.technologies
}

func (f *fakeExtractor) QueryEntities(ctx context.Context, query string) types.QueryEntities {
	return f.entities
}

// fakeGenerator captures the retrieved context and echoes it back.
type fakeGenerator struct {
	err       error
	lastQuery string
	retrieved string
}

func (f *fakeGenerator) Answer(ctx context.Context, query, retrieved string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastQuery = query
	f.retrieved = retrieved
	return "answer based on: " + retrieved, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, store graph.Store, extractor ResumeExtractor, generator AnswerGenerator) *Client {
	t.Helper()
	client, err := New(Config{
		Store:     store,
		Extractor: extractor,
		Generator: generator,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	return client
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestPingWrapsStoreFailure(t *testing.T) {
	client := newTestClient(t, graph.NewMemoryStore(), nil, nil)
	require.NoError(t, client.Ping(context.Background()))

	client.store = failingStore{}
	err := client.Ping(context.Background())
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

// failingStore fails Ping and delegates nothing else.
type failingStore struct {
	graph.Store
}

func (failingStore) Ping(ctx context.Context) error { return errors.New("connection refused") }
