// Package talentgraph builds a knowledge graph from structured resume
// records, infers person-to-person connections, projects the graph into a
// retrievable sentence corpus, and answers natural-language questions about
// candidates with hybrid lexical/semantic retrieval.
package talentgraph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/talentgraph/talentgraph/pkg/embedder"
	"github.com/talentgraph/talentgraph/pkg/graph"
	"github.com/talentgraph/talentgraph/pkg/retrieval"
	"github.com/talentgraph/talentgraph/pkg/similarity"
	"github.com/talentgraph/talentgraph/pkg/telemetry"
	"github.com/talentgraph/talentgraph/pkg/tracker"
	"github.com/talentgraph/talentgraph/pkg/types"
)

// Sentinel errors for the public API.
var (
	// ErrStoreUnavailable indicates the graph store cannot be reached.
	ErrStoreUnavailable = errors.New("graph store unavailable")

	// ErrExtractionFailed indicates entity extraction produced no usable
	// record for a resume.
	ErrExtractionFailed = errors.New("entity extraction failed")

	// ErrNotFound indicates a requested entity does not exist in the graph.
	ErrNotFound = errors.New("not found")

	// ErrATSUnavailable indicates no ATS scorer was configured.
	ErrATSUnavailable = errors.New("ats scorer not configured")
)

// TechnologyExtractor mines technology names from free text. Implementations
// return an empty slice on failure, never an error.
type TechnologyExtractor interface {
	Technologies(ctx context.Context, description string) []string
}

// ResumeExtractor turns raw resume text into a structured record.
type ResumeExtractor interface {
	TechnologyExtractor
	ExtractResume(ctx context.Context, text string) (*types.ResumeRecord, error)
	QueryEntities(ctx context.Context, query string) types.QueryEntities
}

// AnswerGenerator produces the final answer from retrieved context.
type AnswerGenerator interface {
	Answer(ctx context.Context, query, retrieved string) (string, error)
}

// ATSScorer scores resume text against a job description and ranks scored
// candidates.
type ATSScorer interface {
	ScoreResume(ctx context.Context, resumeText, jobDescription string) (*types.ATSAnalysis, error)
	RankCandidates(ctx context.Context, jobDescription string, scores []types.CandidateScore) (string, error)
}

// Config holds the collaborators and tuning knobs for a Client.
type Config struct {
	// Store is the graph database handle. Required.
	Store graph.Store

	// Extractor performs resume, technology, and query-entity extraction.
	// Required for ingestion and querying.
	Extractor ResumeExtractor

	// Generator produces answers. Required for querying.
	Generator AnswerGenerator

	// ATS scores resumes against job descriptions. Optional; the ATS
	// operations fail with ErrATSUnavailable when nil.
	ATS ATSScorer

	// Embedder enables semantic retrieval. Optional; retrieval degrades to
	// lexical-only when nil.
	Embedder embedder.Client

	// Tracker is the ingestion ledger. Optional; without it every file is
	// processed on every run.
	Tracker *tracker.Tracker

	// Telemetry records pipeline events. Optional.
	Telemetry *telemetry.Recorder

	// MaxRetries bounds extract/build attempts per file (default 3).
	MaxRetries int

	// RetryDelay between attempts (default 2s, expressed in seconds).
	RetryDelaySeconds int

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client is the public entry point. It wires the graph builder, connection
// inference, document projection, retrieval, and question answering over a
// single store handle.
type Client struct {
	store     graph.Store
	matcher   *similarity.Matcher
	extractor ResumeExtractor
	generator AnswerGenerator
	ats       ATSScorer
	embedder  embedder.Client
	tracker   *tracker.Tracker
	telemetry *telemetry.Recorder
	logger    *slog.Logger

	maxRetries int
	retryDelay int

	builder    *GraphBuilder
	inferencer *ConnectionInferencer
	projector  *DocumentProjector
}

// New creates a Client from the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.Store == nil {
		return nil, errors.New("talentgraph: Config.Store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelaySeconds
	if retryDelay <= 0 {
		retryDelay = 2
	}

	matcher := similarity.NewMatcher(cfg.Store)
	client := &Client{
		store:      cfg.Store,
		matcher:    matcher,
		extractor:  cfg.Extractor,
		generator:  cfg.Generator,
		ats:        cfg.ATS,
		embedder:   cfg.Embedder,
		tracker:    cfg.Tracker,
		telemetry:  cfg.Telemetry,
		logger:     logger,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
	client.builder = NewGraphBuilder(cfg.Store, matcher, cfg.Extractor, logger)
	client.inferencer = NewConnectionInferencer(cfg.Store, logger)
	client.projector = NewDocumentProjector(cfg.Store)
	return client, nil
}

// BuildGraph ingests one structured resume record into the graph.
func (c *Client) BuildGraph(ctx context.Context, record *types.ResumeRecord, originFile string) error {
	return c.builder.Build(ctx, record, originFile)
}

// InferConnections runs the derived-connection passes over the current graph.
func (c *Client) InferConnections(ctx context.Context) error {
	return c.inferencer.Infer(ctx)
}

// ProjectDocuments renders the graph into the retrievable sentence corpus.
func (c *Client) ProjectDocuments(ctx context.Context) ([]types.Document, error) {
	start := time.Now()
	docs, err := c.projector.Project(ctx)
	c.telemetry.Record(telemetry.StageProject, "", time.Since(start), err)
	return docs, err
}

// BuildIndex projects the graph and indexes the corpus for retrieval.
func (c *Client) BuildIndex(ctx context.Context) (*retrieval.HybridRetriever, error) {
	docs, err := c.ProjectDocuments(ctx)
	if err != nil {
		return nil, err
	}
	return retrieval.NewHybridRetriever(ctx, docs, c.embedder, c.logger), nil
}

// EnsureConstraints installs the per-label name uniqueness constraints.
func (c *Client) EnsureConstraints(ctx context.Context) error {
	return c.store.EnsureConstraints(ctx)
}

// Ping verifies graph store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}

// Close releases the store, ledger, and telemetry resources.
func (c *Client) Close(ctx context.Context) error {
	var errs []error
	if c.tracker != nil {
		errs = append(errs, c.tracker.Close())
	}
	errs = append(errs, c.telemetry.Close())
	errs = append(errs, c.store.Close(ctx))
	return errors.Join(errs...)
}
