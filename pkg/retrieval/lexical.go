// Package retrieval ranks graph-projected documents against user queries.
// A TF-IDF lexical ranker and an embedding-based semantic ranker each
// contribute their top results; the hybrid retriever merges them with
// lexical hits first and duplicates removed.
package retrieval

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/talentgraph/talentgraph/pkg/types"
)

// TopK is how many documents each ranker contributes to the hybrid result.
const TopK = 5

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// LexicalRanker is a TF-IDF vectorizer over the projected document corpus.
// It builds a vocabulary with smoothed IDF values and scores queries by
// cosine similarity of L2-normalized vectors.
type LexicalRanker struct {
	docs       []types.Document
	vocabulary map[string]int
	idf        []float64
	docVectors [][]float64
	stopwords  map[string]struct{}
}

// NewLexicalRanker builds a ranker over the given corpus.
func NewLexicalRanker(docs []types.Document) *LexicalRanker {
	r := &LexicalRanker{
		docs:      docs,
		stopwords: defaultStopwords(),
	}
	r.prepare()
	return r
}

func (r *LexicalRanker) prepare() {
	df := make(map[string]int)
	tokenized := make([][]string, len(r.docs))
	for i, doc := range r.docs {
		tokens := r.tokenize(doc.Text)
		tokenized[i] = tokens
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	r.vocabulary = make(map[string]int, len(terms))
	r.idf = make([]float64, len(terms))
	n := float64(len(r.docs))
	for i, term := range terms {
		r.vocabulary[term] = i
		// Smoothed IDF
		r.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	r.docVectors = make([][]float64, len(r.docs))
	for i, tokens := range tokenized {
		r.docVectors[i] = r.vectorize(tokens)
	}
}

// TopK returns the highest-scoring documents for the query, at most k, in
// descending score order. Documents with no term overlap are excluded.
func (r *LexicalRanker) TopK(query string, k int) []types.Document {
	if len(r.docs) == 0 || k <= 0 {
		return nil
	}

	queryVec := r.vectorize(r.tokenize(query))

	type scored struct {
		index int
		score float64
	}
	results := make([]scored, 0, len(r.docs))
	for i, docVec := range r.docVectors {
		score := dot(queryVec, docVec)
		if score > 0 {
			results = append(results, scored{index: i, score: score})
		}
	}

	// Earlier documents win ties so ranking is stable across runs.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	if len(results) > k {
		results = results[:k]
	}
	docs := make([]types.Document, len(results))
	for i, res := range results {
		docs[i] = r.docs[res.index]
	}
	return docs
}

// vectorize computes the L2-normalized TF-IDF vector for the tokens.
func (r *LexicalRanker) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(r.idf))
	tf := make(map[int]int)
	total := 0
	for _, tok := range tokens {
		if idx, ok := r.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * r.idf[idx]
	}

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (r *LexicalRanker) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, isStop := r.stopwords[tok]; isStop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"should", "now", "who", "what", "which", "does", "do", "has",
		"have", "had",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
