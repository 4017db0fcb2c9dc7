package embedder

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const defaultBatchSize = 100

// modelDimensions maps known OpenAI embedding models to their vector sizes.
var modelDimensions = map[string]int{
	"text-embedding-ada-002": 1536,
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
}

// OpenAIEmbedder implements Client using the OpenAI embeddings API,
// including OpenAI-compatible services via a custom base URL.
type OpenAIEmbedder struct {
	client *openai.Client
	config Config
}

// NewOpenAIEmbedder creates a new OpenAI embedding client.
func NewOpenAIEmbedder(apiKey string, config Config) *OpenAIEmbedder {
	if config.Model == "" {
		config.Model = "text-embedding-3-small"
	}
	if config.Dimensions == 0 {
		if dims, ok := modelDimensions[config.Model]; ok {
			config.Dimensions = dims
		} else {
			config.Dimensions = 1536
		}
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaultBatchSize
	}

	var client *openai.Client
	if config.BaseURL != "" {
		clientConfig := openai.DefaultConfig(apiKey)
		clientConfig.BaseURL = config.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(apiKey)
	}

	return &OpenAIEmbedder{client: client, config: config}
}

// Embed implements Client. Requests are batched to stay within provider
// limits.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.config.BatchSize {
		end := start + e.config.BatchSize
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(e.config.Model),
			Input: texts[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("embedding request failed: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrNoEmbeddings, len(resp.Data), end-start)
		}

		for _, item := range resp.Data {
			embeddings = append(embeddings, item.Embedding)
		}
	}
	return embeddings, nil
}

// EmbedSingle implements Client.
func (e *OpenAIEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, ErrNoEmbeddings
	}
	return embeddings[0], nil
}

// Dimensions implements Client.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.config.Dimensions
}

// Close implements Client (no-op for OpenAI).
func (e *OpenAIEmbedder) Close() error {
	return nil
}
