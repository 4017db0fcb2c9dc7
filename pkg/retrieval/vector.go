package retrieval

import (
	"math"
	"sort"

	"github.com/talentgraph/talentgraph/pkg/types"
)

// CosineSimilarity computes cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(vector1, vector2 []float32) float64 {
	if len(vector1) != len(vector2) {
		return 0.0
	}

	var dotProduct float64
	var norm1, norm2 float64
	for i := range vector1 {
		dotProduct += float64(vector1[i]) * float64(vector2[i])
		norm1 += float64(vector1[i]) * float64(vector1[i])
		norm2 += float64(vector2[i]) * float64(vector2[i])
	}

	norm1 = math.Sqrt(norm1)
	norm2 = math.Sqrt(norm2)
	if norm1 == 0 || norm2 == 0 {
		return 0.0
	}
	return dotProduct / (norm1 * norm2)
}

// SemanticIndex holds precomputed document embeddings and ranks them against
// a query embedding by cosine similarity.
type SemanticIndex struct {
	docs       []types.Document
	embeddings [][]float32
}

// NewSemanticIndex pairs documents with their embeddings. The two slices
// must be the same length.
func NewSemanticIndex(docs []types.Document, embeddings [][]float32) *SemanticIndex {
	return &SemanticIndex{docs: docs, embeddings: embeddings}
}

// TopK returns the documents closest to the query embedding, at most k, in
// descending similarity order.
func (s *SemanticIndex) TopK(queryEmbedding []float32, k int) []types.Document {
	if len(s.docs) == 0 || k <= 0 {
		return nil
	}

	type scored struct {
		index int
		score float64
	}
	results := make([]scored, len(s.docs))
	for i, embedding := range s.embeddings {
		results[i] = scored{index: i, score: CosineSimilarity(queryEmbedding, embedding)}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	if len(results) > k {
		results = results[:k]
	}
	docs := make([]types.Document, len(results))
	for i, res := range results {
		docs[i] = s.docs[res.index]
	}
	return docs
}
