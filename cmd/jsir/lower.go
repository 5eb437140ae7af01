package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsir/internal/driver"
	"jsir/internal/source"
)

var lowerCmd = &cobra.Command{
	Use:     "cfg [flags] <file.json|directory>",
	Aliases: []string{"lower"},
	Short:   "Lower serialized syntax trees to basic-block IR",
	Long:  `Lower runs the full pipeline: scope analysis followed by IR construction and finalization. The finalized blocks are printed in reverse postorder`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json|short)")
	lowerCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	lowerCmd.Flags().Bool("no-dump", false, "suppress the IR dump, report diagnostics only")
}

func runLower(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := resolvePipelineConfig(cmd, inputPath, driver.StageLower)
	if err != nil {
		return err
	}

	noDump, err := cmd.Flags().GetBool("no-dump")
	if err != nil {
		return fmt.Errorf("failed to get no-dump flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	noDump = noDump || quiet

	fileSet := source.NewFileSet()
	results, err := runOnPath(cmd.Context(), fileSet, inputPath, cfg.driverOpts)
	if err != nil {
		return err
	}

	hadErrors, err := renderResults(cmd, results, fileSet, cfg)
	if err != nil {
		return err
	}

	if !noDump {
		out := cmd.OutOrStdout()
		for _, res := range results {
			if res.Unit == nil {
				continue
			}
			if len(results) > 1 {
				fmt.Fprintf(out, "// %s\n", res.Path)
			}
			fmt.Fprint(out, driver.DumpUnit(res))
			fmt.Fprintln(out)
		}
	}

	if hadErrors {
		cmd.SilenceUsage = true
		return fmt.Errorf("lowering reported errors")
	}
	return nil
}
