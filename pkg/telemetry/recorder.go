// Package telemetry records pipeline events to Parquet files for offline
// analysis: how long each ingestion stage took per file, and which stages
// failed. Recording is optional; a nil Recorder drops every event.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// Pipeline stages that emit events.
const (
	StageExtract = "extract"
	StageBuild   = "graph_build"
	StageInfer   = "infer_connections"
	StageProject = "project_documents"
	StageQuery   = "query"
	StageATS     = "ats_analysis"
)

// Event is one recorded pipeline step.
type Event struct {
	ID         string    `parquet:"id"`
	Timestamp  time.Time `parquet:"timestamp"`
	Stage      string    `parquet:"stage"`
	File       string    `parquet:"file"`
	DurationMs int64     `parquet:"duration_ms"`
	Error      string    `parquet:"error"`
}

// Recorder buffers events and writes them to timestamped Parquet files in
// the output directory. Events are flushed every batchSize records and on
// Close.
type Recorder struct {
	outputDir string
	batchSize int

	mu     sync.Mutex
	buffer []Event
}

// NewRecorder creates a recorder writing to outputDir.
func NewRecorder(outputDir string) (*Recorder, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}
	return &Recorder{
		outputDir: outputDir,
		batchSize: 100,
		buffer:    make([]Event, 0, 100),
	}, nil
}

// Record buffers one event. Safe to call on a nil recorder.
func (r *Recorder) Record(stage, file string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	event := Event{
		ID:         uuid.New().String(),
		Timestamp:  time.Now().UTC(),
		Stage:      stage,
		File:       file,
		DurationMs: duration.Milliseconds(),
	}
	if err != nil {
		event.Error = err.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffer = append(r.buffer, event)
	if len(r.buffer) >= r.batchSize {
		_ = r.flush()
	}
}

// Close flushes any buffered events. Safe to call on a nil recorder.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flush()
}

// flush writes the buffer to a new Parquet file. Caller must hold the lock.
func (r *Recorder) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	filename := fmt.Sprintf("pipeline_events_%s_%d.parquet",
		time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(r.outputDir, filename)

	if err := parquet.WriteFile(path, r.buffer); err != nil {
		return fmt.Errorf("failed to write telemetry parquet file: %w", err)
	}

	r.buffer = r.buffer[:0]
	return nil
}
