package talentgraph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentgraph/talentgraph/pkg/config"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Ingest resume files into the knowledge graph",
	Long: `Ingest every .txt and .md resume file in a directory into the
knowledge graph. Files already recorded as processed in the ingestion ledger
are skipped; failed files are tombstoned and retried on the next run.
Connection inference runs once after the batch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := cfg.Ingest.ResumeDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no resume directory given")
	}

	client, _, err := buildClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize talentgraph: %w", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	if err := client.EnsureConstraints(ctx); err != nil {
		return fmt.Errorf("failed to ensure graph constraints: %w", err)
	}

	report, err := client.IngestDirectory(ctx, dir)
	if err != nil {
		return err
	}

	fmt.Printf("Processed: %d, skipped: %d, failed: %d\n",
		report.Processed, report.Skipped, report.Failed)
	return nil
}
