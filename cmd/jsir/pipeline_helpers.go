package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jsir/internal/diag"
	"jsir/internal/diagfmt"
	"jsir/internal/driver"
	"jsir/internal/project"
	"jsir/internal/sema"
	"jsir/internal/source"
)

// pipelineConfig is everything a run command needs after flag and manifest
// resolution.
type pipelineConfig struct {
	driverOpts driver.Options
	format     string
	color      bool
}

// resolvePipelineConfig merges the project manifest (if any) with CLI flags.
// Flags win over manifest values.
func resolvePipelineConfig(cmd *cobra.Command, inputPath string, stage driver.Stage) (pipelineConfig, error) {
	cfg := project.Config{}
	startDir := inputPath
	if info, err := os.Stat(inputPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(inputPath)
	}
	if manifestPath, ok, err := project.FindManifest(startDir); err != nil {
		return pipelineConfig{}, err
	} else if ok {
		cfg, err = project.LoadConfig(manifestPath)
		if err != nil {
			return pipelineConfig{}, err
		}
	}

	opts := driver.Options{
		Analyzer: cfg.AnalyzerOptions(),
		Stage:    stage,
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return pipelineConfig{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics > 0 {
		opts.Analyzer.MaxDiagnostics = maxDiagnostics
	}
	if opts.Analyzer.MaxDiagnostics <= 0 {
		opts.Analyzer.MaxDiagnostics = sema.DefaultMaxDiagnostics
	}

	if jobsFlag := cmd.Flags().Lookup("jobs"); jobsFlag != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return pipelineConfig{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		opts.Jobs = jobs
	}

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") || format == "" {
		f, err := cmd.Flags().GetString("format")
		if err != nil {
			return pipelineConfig{}, fmt.Errorf("failed to get format flag: %w", err)
		}
		format = f
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return pipelineConfig{}, fmt.Errorf("unsupported format %q (expected: pretty|json|short)", format)
	}

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return pipelineConfig{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	if cfg.Output.Color != "" && !cmd.Root().PersistentFlags().Changed("color") {
		colorMode = cfg.Output.Color
	}

	return pipelineConfig{
		driverOpts: opts,
		format:     format,
		color:      useColor(colorMode, os.Stdout),
	}, nil
}

// runOnPath processes a single file or a directory tree and returns the
// results in deterministic order.
func runOnPath(ctx context.Context, fileSet *source.FileSet, path string, opts driver.Options) ([]*driver.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return driver.ProcessDir(ctx, fileSet, path, opts)
	}
	res, err := driver.ProcessFile(ctx, fileSet, path, opts)
	if err != nil {
		return nil, err
	}
	return []*driver.Result{res}, nil
}

// renderResults prints diagnostics for every result and reports whether any
// result carried an error.
func renderResults(cmd *cobra.Command, results []*driver.Result, fileSet *source.FileSet, cfg pipelineConfig) (bool, error) {
	out := cmd.OutOrStdout()
	hadErrors := false

	switch cfg.format {
	case "json":
		merged := diag.NewBag(0)
		for _, res := range results {
			merged.Merge(res.Bag)
			hadErrors = hadErrors || res.HasErrors()
		}
		merged.Sort()
		merged.Dedup()
		if err := diagfmt.JSON(out, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return hadErrors, err
		}

	case "short":
		for _, res := range results {
			res.Bag.Sort()
			diagfmt.Short(out, res.Bag, fileSet, diagfmt.PathModeFull)
			hadErrors = hadErrors || res.HasErrors()
		}

	default:
		for _, res := range results {
			driver.RenderDiagnostics(res, fileSet, out, diagfmt.PrettyOpts{
				Color:      cfg.color,
				ShowNotes:  true,
				ShowSource: true,
			})
			hadErrors = hadErrors || res.HasErrors()
		}
	}

	return hadErrors, nil
}
