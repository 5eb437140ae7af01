package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsir/internal/driver"
	"jsir/internal/source"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file.json|directory>",
	Short: "Resolve scopes and labels in serialized syntax trees",
	Long:  `Analyze runs scope analysis over one serialized syntax tree or every *.json file in a directory, reporting unresolved references, duplicate declarations, and invalid break/continue targets`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	analyzeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	analyzeCmd.Flags().Bool("stats", false, "print per-file scope statistics")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := resolvePipelineConfig(cmd, inputPath, driver.StageAnalyze)
	if err != nil {
		return err
	}

	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showStats = showStats && !quiet

	fileSet := source.NewFileSet()
	results, err := runOnPath(cmd.Context(), fileSet, inputPath, cfg.driverOpts)
	if err != nil {
		return err
	}

	hadErrors, err := renderResults(cmd, results, fileSet, cfg)
	if err != nil {
		return err
	}

	if showStats {
		for _, res := range results {
			if res.Table == nil {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d scopes, %d declarations, %d references\n",
				res.Path, res.Table.ScopeCount(), res.Table.DeclCount(), res.Table.RefCount())
		}
	}

	if hadErrors {
		cmd.SilenceUsage = true
		return fmt.Errorf("analysis reported errors")
	}
	return nil
}
