package talentgraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentgraph/talentgraph/pkg/config"
)

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Ask a question about the candidates in the graph",
	Long: `Ask a natural-language question about the ingested candidates.
The graph is projected into a sentence corpus, retrieved with hybrid
lexical/semantic ranking, and the answer generated from the retrieved
context plus targeted graph lookups.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
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

	retriever, err := client.BuildIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to build retrieval index: %w", err)
	}

	question := strings.Join(args, " ")
	fmt.Println(client.Answer(ctx, question, retriever))
	return nil
}
