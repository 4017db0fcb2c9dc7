package main

import (
	"log/slog"

	"github.com/talentgraph/talentgraph/pkg/logger"
)

func main() {
	log := logger.NewDefaultLogger(slog.LevelDebug)

	log.Info("============================================")
	log.Info("    TalentGraph Colored Logger Demo")
	log.Info("============================================")
	log.Info("")

	log.Debug("Debug message - standard color")
	log.Info("Info message - standard color")
	log.Info("Persisting nodes to database - green!")
	log.Warn("Warning message - yellow!")
	log.Error("Error message - red!")

	log.Info("")
	log.Info("Graph operations are highlighted in green:")
	log.Info("Connected people", "relationship", "STUDIED_WITH", "institution", "Stanford University")
	log.Info("Merged duplicate skill", "canonical", "Python", "duplicate", "Python 3.9")
	log.Info("Ingestion complete", "processed", 12, "skipped", 3, "failed", 1)

	log.Info("")
	log.Info("Demo complete!")
}
