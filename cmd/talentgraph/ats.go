package talentgraph

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentgraph/talentgraph/pkg/config"
)

var atsResumeDir string

var atsCmd = &cobra.Command{
	Use:   "ats <job-description-file>",
	Short: "Score ingested candidates against a job description",
	Long: `Score every candidate with a stored resume file against the job
description in the given file and print a ranked summary of how well each
candidate matches the role.`,
	Args: cobra.ExactArgs(1),
	RunE: runATS,
}

func init() {
	atsCmd.Flags().StringVar(&atsResumeDir, "resume-dir", "", "directory holding the ingested resume files")
	rootCmd.AddCommand(atsCmd)
}

func runATS(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	resumeDir := cfg.Ingest.ResumeDir
	if cmd.Flags().Changed("resume-dir") {
		resumeDir = atsResumeDir
	}

	jobDescription, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	client, _, err := buildClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize talentgraph: %w", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	summary, err := client.AnalyzeCandidates(ctx, resumeDir, string(jobDescription))
	if err != nil {
		return fmt.Errorf("ats analysis failed: %w", err)
	}
	fmt.Println(summary)
	return nil
}
