package embedder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talentgraph/talentgraph/pkg/embedder"
)

func TestEmbedderInterface(t *testing.T) {
	var _ embedder.Client = (*embedder.OpenAIEmbedder)(nil)
	var _ embedder.Client = (*embedder.EmbedEverythingClient)(nil)
}

func TestOpenAIEmbedderDefaults(t *testing.T) {
	tests := []struct {
		name         string
		config       embedder.Config
		expectedDims int
	}{
		{
			name:         "empty config uses defaults",
			config:       embedder.Config{},
			expectedDims: 1536,
		},
		{
			name:         "ada model",
			config:       embedder.Config{Model: "text-embedding-ada-002"},
			expectedDims: 1536,
		},
		{
			name:         "large model",
			config:       embedder.Config{Model: "text-embedding-3-large"},
			expectedDims: 3072,
		},
		{
			name:         "custom dimensions win",
			config:       embedder.Config{Model: "custom-model", Dimensions: 512},
			expectedDims: 512,
		},
		{
			name:         "custom base URL",
			config:       embedder.Config{Model: "text-embedding-3-small", BaseURL: "https://api.example.com/v1"},
			expectedDims: 1536,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := embedder.NewOpenAIEmbedder("test-key", tt.config)
			assert.NotNil(t, client)
			assert.Equal(t, tt.expectedDims, client.Dimensions())
		})
	}
}
