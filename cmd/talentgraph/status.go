package talentgraph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentgraph/talentgraph/pkg/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the ingestion ledger",
	Long:  `List the resume files recorded as processed or failed in the ingestion ledger.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, _, err := buildClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize talentgraph: %w", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	status, err := client.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Processed files: %d\n", len(status.Processed))
	for _, entry := range status.Processed {
		fmt.Printf("  %s  (%s)\n", entry.Filename, entry.Timestamp.Format("2006-01-02 15:04:05"))
	}

	fmt.Printf("Failed files: %d\n", len(status.Failed))
	for _, entry := range status.Failed {
		fmt.Printf("  %s  (%s): %s\n", entry.Filename, entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Error)
	}
	return nil
}
