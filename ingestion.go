package talentgraph

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/talentgraph/talentgraph/pkg/telemetry"
	"github.com/talentgraph/talentgraph/pkg/tracker"
)

// IngestReport summarizes one directory ingestion run.
type IngestReport struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// IngestDirectory processes every .txt and .md resume file in dir. Files
// whose content checksum the ledger already records as processed are
// skipped. Each file gets bounded extract-and-build retries; a file that
// still fails gets a failure tombstone in the ledger and the batch
// continues. Connection inference runs once after the batch when at least
// one file was processed.
func (c *Client) IngestDirectory(ctx context.Context, dir string) (*IngestReport, error) {
	if c.extractor == nil {
		return nil, errors.New("talentgraph: no extractor configured")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume directory: %w", err)
	}

	report := &IngestReport{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		if err := ctx.Err(); err != nil {
			return report, err
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn("failed to read resume file", "file", entry.Name(), "error", err)
			report.Failed++
			continue
		}

		checksum := fileChecksum(content)
		if c.tracker != nil {
			processed, err := c.tracker.IsProcessed(checksum)
			if err != nil {
				return report, fmt.Errorf("ledger lookup failed: %w", err)
			}
			if processed {
				c.logger.Debug("skipping already processed resume", "file", entry.Name())
				report.Skipped++
				continue
			}
		}

		if err := c.ingestFile(ctx, entry.Name(), string(content)); err != nil {
			c.logger.Warn("resume ingestion failed", "file", entry.Name(), "error", err)
			if c.tracker != nil {
				if markErr := c.tracker.MarkFailed(entry.Name(), checksum, err.Error()); markErr != nil {
					c.logger.Error("failed to record failure tombstone", "file", entry.Name(), "error", markErr)
				}
			}
			report.Failed++
			continue
		}

		if c.tracker != nil {
			if err := c.tracker.MarkProcessed(entry.Name(), checksum); err != nil {
				c.logger.Error("failed to record processed file", "file", entry.Name(), "error", err)
			}
		}
		report.Processed++
	}

	if report.Processed > 0 {
		start := time.Now()
		err := c.InferConnections(ctx)
		c.telemetry.Record(telemetry.StageInfer, "", time.Since(start), err)
		if err != nil {
			return report, fmt.Errorf("connection inference failed: %w", err)
		}
	}

	c.logger.Info("ingestion complete",
		"processed", report.Processed,
		"skipped", report.Skipped,
		"failed", report.Failed)
	return report, nil
}

// ingestFile runs extract-then-build with bounded retries.
func (c *Client) ingestFile(ctx context.Context, filename, content string) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(c.retryDelay) * time.Second):
			}
			c.logger.Debug("retrying resume", "file", filename, "attempt", attempt)
		}

		start := time.Now()
		record, err := c.extractor.ExtractResume(ctx, content)
		c.telemetry.Record(telemetry.StageExtract, filename, time.Since(start), err)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrExtractionFailed, err)
			continue
		}

		start = time.Now()
		err = c.BuildGraph(ctx, record, filename)
		c.telemetry.Record(telemetry.StageBuild, filename, time.Since(start), err)
		if err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// Status returns the ledger's processed and failed records.
func (c *Client) Status(ctx context.Context) (*tracker.Status, error) {
	if c.tracker == nil {
		return &tracker.Status{}, nil
	}
	return c.tracker.Status()
}

func fileChecksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
