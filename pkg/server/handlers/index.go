package handlers

import (
	"context"
	"sync"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/retrieval"
)

// Index holds the retrieval index shared between handlers. The index is
// built lazily on the first query and rebuilt after every ingestion run, so
// answers always reflect the current graph.
type Index struct {
	client *talentgraph.Client

	mu        sync.Mutex
	retriever *retrieval.HybridRetriever
}

// NewIndex creates an index manager over the given client.
func NewIndex(client *talentgraph.Client) *Index {
	return &Index{client: client}
}

// Get returns the current retriever, building it on first use.
func (idx *Index) Get(ctx context.Context) (*retrieval.HybridRetriever, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.retriever == nil {
		retriever, err := idx.client.BuildIndex(ctx)
		if err != nil {
			return nil, err
		}
		idx.retriever = retriever
	}
	return idx.retriever, nil
}

// Rebuild replaces the retriever with a fresh projection of the graph.
func (idx *Index) Rebuild(ctx context.Context) error {
	retriever, err := idx.client.BuildIndex(ctx)
	if err != nil {
		return err
	}
	idx.mu.Lock()
	idx.retriever = retriever
	idx.mu.Unlock()
	return nil
}
