// Package embedder provides text embedding clients for vector representations.
//
// The Client interface is implemented by an OpenAI-backed embedder and a
// local EmbedEverything embedder. Semantic retrieval degrades to lexical-only
// ranking when no embedder is configured, so both implementations are
// optional at runtime.
package embedder

import (
	"context"
	"errors"
)

// ErrNoEmbeddings is returned when the provider responds without vectors.
var ErrNoEmbeddings = errors.New("no embeddings returned")

// Config holds configuration shared by embedding clients.
type Config struct {
	Model      string `json:"model" mapstructure:"model"`
	BaseURL    string `json:"base_url,omitempty" mapstructure:"base_url"`
	Dimensions int    `json:"dimensions,omitempty" mapstructure:"dimensions"`
	BatchSize  int    `json:"batch_size,omitempty" mapstructure:"batch_size"`
}

// Client defines the interface for embedding operations.
type Client interface {
	// Embed generates embeddings for the given texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle generates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the number of dimensions in the embeddings.
	Dimensions() int

	// Close cleans up any resources.
	Close() error
}
