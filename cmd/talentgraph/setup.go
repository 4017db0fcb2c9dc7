package talentgraph

import (
	"fmt"
	"log/slog"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/config"
	"github.com/talentgraph/talentgraph/pkg/embedder"
	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/logger"
	"github.com/talentgraph/talentgraph/pkg/nlp"
	"github.com/talentgraph/talentgraph/pkg/telemetry"
	"github.com/talentgraph/talentgraph/pkg/tracker"
)

// buildClient wires a talentgraph.Client from configuration: graph store,
// LLM extractor and generator, embedder, ingestion ledger, and telemetry.
func buildClient(cfg *config.Config) (*talentgraph.Client, *slog.Logger, error) {
	log := logger.NewDefaultLogger(logger.ParseLevel(cfg.Log.Level))

	store, err := buildStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	var extractor *nlp.Extractor
	var generator *nlp.Generator
	var analyzer *nlp.ATSAnalyzer
	if cfg.LLM.APIKey != "" {
		llmClient, err := buildLLMClient(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		extractor = nlp.NewExtractor(llmClient, log)
		generator = nlp.NewGenerator(llmClient)
		analyzer = nlp.NewATSAnalyzer(llmClient)
	}

	embedClient, err := buildEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}

	var ledger *tracker.Tracker
	if cfg.Ingest.TrackerPath != "" {
		ledger, err = tracker.Open(cfg.Ingest.TrackerPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open ingestion ledger: %w", err)
		}
	}

	var recorder *telemetry.Recorder
	if cfg.Telemetry.ParquetPath != "" {
		recorder, err = telemetry.NewRecorder(cfg.Telemetry.ParquetPath)
		if err != nil {
			log.Warn("telemetry disabled", "error", err)
		}
	}

	clientCfg := talentgraph.Config{
		Store:             store,
		Embedder:          embedClient,
		Tracker:           ledger,
		Telemetry:         recorder,
		MaxRetries:        cfg.Ingest.MaxRetries,
		RetryDelaySeconds: cfg.Ingest.RetryDelaySecs,
		Logger:            log,
	}
	if extractor != nil {
		clientCfg.Extractor = extractor
		clientCfg.Generator = generator
		clientCfg.ATS = analyzer
	}

	client, err := talentgraph.New(clientCfg)
	if err != nil {
		return nil, nil, err
	}
	return client, log, nil
}

func buildStore(cfg *config.Config) (graph.Store, error) {
	switch cfg.Database.Driver {
	case "neo4j":
		store, err := graph.NewNeo4jStore(
			cfg.Database.URI,
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Database,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
		}
		return store, nil
	case "memory":
		return graph.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func buildLLMClient(cfg *config.Config, log *slog.Logger) (nlp.Client, error) {
	nlpConfig := nlp.Config{
		Model:       cfg.LLM.Model,
		Temperature: &cfg.LLM.Temperature,
		BaseURL:     cfg.LLM.BaseURL,
	}
	if cfg.LLM.MaxTokens > 0 {
		nlpConfig.MaxTokens = &cfg.LLM.MaxTokens
	}

	client, err := nlp.NewOpenAIClient(cfg.LLM.APIKey, nlpConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	if !cfg.CircuitBreaker.Enabled {
		return client, nil
	}
	breakerCfg := nlp.CircuitBreakerConfig{
		Enabled:          cfg.CircuitBreaker.Enabled,
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		IntervalSeconds:  cfg.CircuitBreaker.IntervalSeconds,
		TimeoutSeconds:   cfg.CircuitBreaker.TimeoutSeconds,
		ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
	}
	return nlp.NewCircuitBreakerClient(client, breakerCfg, log, "llm"), nil
}

func buildEmbedder(cfg *config.Config) (embedder.Client, error) {
	switch cfg.Embedding.Provider {
	case "":
		return nil, nil
	case "openai":
		if cfg.Embedding.APIKey == "" {
			return nil, nil
		}
		return embedder.NewOpenAIEmbedder(cfg.Embedding.APIKey, embedder.Config{
			Model:      cfg.Embedding.Model,
			BaseURL:    cfg.Embedding.BaseURL,
			Dimensions: cfg.Embedding.Dimensions,
		}), nil
	case "embedeverything":
		return embedder.NewEmbedEverythingClient(embedder.Config{
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}
