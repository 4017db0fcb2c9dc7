package retrieval

import (
	"context"
	"log/slog"

	"github.com/talentgraph/talentgraph/pkg/embedder"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// HybridRetriever merges lexical and semantic rankings over the projected
// document corpus. When no embedder is configured, or embedding fails, it
// degrades to lexical-only ranking.
type HybridRetriever struct {
	lexical  *LexicalRanker
	semantic *SemanticIndex
	embedder embedder.Client
	logger   *slog.Logger
}

// NewHybridRetriever indexes the corpus for both rankers. The embedder may
// be nil for lexical-only retrieval. Document embedding failures are logged
// and disable the semantic side; they never fail index construction.
func NewHybridRetriever(ctx context.Context, docs []types.Document, embedClient embedder.Client, logger *slog.Logger) *HybridRetriever {
	if logger == nil {
		logger = slog.Default()
	}

	r := &HybridRetriever{
		lexical:  NewLexicalRanker(docs),
		embedder: embedClient,
		logger:   logger,
	}

	if embedClient == nil || len(docs) == 0 {
		return r
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	embeddings, err := embedClient.Embed(ctx, texts)
	if err != nil {
		logger.Warn("document embedding failed, semantic ranking disabled", "error", err)
		return r
	}
	if len(embeddings) != len(docs) {
		logger.Warn("embedding count mismatch, semantic ranking disabled",
			"documents", len(docs), "embeddings", len(embeddings))
		return r
	}
	r.semantic = NewSemanticIndex(docs, embeddings)
	return r
}

// Retrieve returns the merged ranking for the query: the lexical top
// results first, then the semantic top results, with exact-duplicate texts
// removed keeping the first occurrence.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string) []types.Document {
	merged := r.lexical.TopK(query, TopK)

	if r.semantic != nil {
		queryEmbedding, err := r.embedder.EmbedSingle(ctx, query)
		if err != nil {
			r.logger.Warn("query embedding failed, using lexical results only", "error", err)
		} else {
			merged = append(merged, r.semantic.TopK(queryEmbedding, TopK)...)
		}
	}

	seen := make(map[string]struct{}, len(merged))
	deduped := merged[:0]
	for _, doc := range merged {
		if _, ok := seen[doc.Text]; ok {
			continue
		}
		seen[doc.Text] = struct{}{}
		deduped = append(deduped, doc)
	}
	return deduped
}
