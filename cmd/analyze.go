package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arden-renewables/sitescope/internal/analysis"
	"github.com/arden-renewables/sitescope/internal/evaluator"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <project-id>",
	Short: "Run a constraint analysis for a project's stored boundary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		runner := analysis.NewRunner(st, cat, runnerConfig())
		result, err := runner.Run(ctx, args[0])
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printResult(result)
		return nil
	},
}

func runnerConfig() analysis.RunnerConfig {
	rc := analysis.DefaultRunnerConfig()
	if cfg.Analysis.FetchTimeoutSecs > 0 {
		rc.FetchTimeout = time.Duration(cfg.Analysis.FetchTimeoutSecs) * time.Second
	}
	if cfg.Analysis.MaxConcurrent > 0 {
		rc.MaxConcurrent = cfg.Analysis.MaxConcurrent
	}
	rc.FetchRatePerSec = cfg.Analysis.FetchRatePerSec
	return rc
}

func printResult(result *analysis.Result) {
	fmt.Printf("Project %s: overall %.1f (%s)\n\n", result.ProjectID, result.OverallScore, result.OverallStatus)

	for _, cat := range result.Categories {
		fmt.Printf("%-16s %6.1f  %s\n", cat.Category, cat.Score, cat.Status)
		for _, c := range cat.Constraints {
			marker := " "
			if c.Status == evaluator.StatusChallenging {
				marker = "!"
			}
			fmt.Printf("  %s %-32s %6.1f  %s\n", marker, c.Name, c.Score, c.Description)
		}
	}

	fmt.Println()
	for _, rec := range result.Summary.Recommendations {
		fmt.Printf("- %s\n", rec)
	}
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
