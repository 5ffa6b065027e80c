package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jsbundle/jsbundle/app"
	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/service"
	"github.com/spf13/cobra"
)

var (
	depsOutputFormat    string
	depsOutputPath      string
	depsDotFormat       bool
	depsIncludeExternal bool
	depsNoCycles        bool
	depsMaxDepth        int
	depsNoLegend        bool
	depsRankDir         string
	depsNoRecursive     bool
)

func depsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [path...]",
		Short: "Analyze and visualize module dependencies",
		Long: `Analyze a JavaScript module graph and generate visualizations.

Supports multiple output formats:
  - text: Human-readable text summary
  - json: JSON format for programmatic consumption
  - dot:  Graphviz DOT format for visualization

Examples:
  # Generate DOT and render with Graphviz
  jsbundle deps --dot src/ > deps.dot
  dot -Tpng deps.dot -o deps.png

  # Pipe directly to Graphviz
  jsbundle deps --dot src/ | dot -Tsvg -o deps.svg

  # JSON for programmatic use
  jsbundle deps --format json src/

  # Save to file
  jsbundle deps --dot -o deps.dot src/`,
		RunE: runDeps,
	}

	cmd.Flags().StringVarP(&depsOutputFormat, "format", "f", "text",
		"Output format: text, json, dot")
	cmd.Flags().StringVarP(&depsOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&depsDotFormat, "dot", false,
		"Shorthand for --format dot")
	cmd.Flags().BoolVar(&depsIncludeExternal, "include-external", false,
		"Include bare-specifier (node_modules-style) dependencies")
	cmd.Flags().BoolVar(&depsNoCycles, "no-cycles", false,
		"Disable cycle detection")
	cmd.Flags().IntVar(&depsMaxDepth, "max-depth", 0,
		"Limit dependency depth shown in DOT output (0 = unlimited)")
	cmd.Flags().BoolVar(&depsNoLegend, "no-legend", false,
		"Disable legend in DOT output")
	cmd.Flags().StringVar(&depsRankDir, "rank-dir", "TB",
		"Layout direction for DOT: TB, LR, BT, RL")
	cmd.Flags().BoolVar(&depsNoRecursive, "no-recursive", false,
		"Only scan the given directories, not their subdirectories")

	return cmd
}

func runDeps(cmd *cobra.Command, args []string) (err error) {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	format := domain.OutputFormatText
	switch {
	case depsDotFormat || depsOutputFormat == "dot":
		format = domain.OutputFormatDOT
	case depsOutputFormat == "json":
		format = domain.OutputFormatJSON
	case depsOutputFormat == "text":
		format = domain.OutputFormatText
	default:
		return fmt.Errorf("unsupported format: %s", depsOutputFormat)
	}

	fileHelper := app.NewFileHelper()
	files, err := app.ResolveFilePaths(fileHelper, args, !depsNoRecursive, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no JavaScript files found")
	}

	if format == domain.OutputFormatText {
		fmt.Printf("Analyzing %d files...\n", len(files))
	}

	svc := service.NewDependencyGraphService(depsIncludeExternal)

	req := domain.DependencyGraphRequest{
		Paths:           files,
		OutputFormat:    format,
		IncludeExternal: domain.BoolPtr(depsIncludeExternal),
		DetectCycles:    domain.BoolPtr(!depsNoCycles),
	}

	ctx := context.Background()
	start := time.Now()
	response, err := svc.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	duration := time.Since(start)

	if format == domain.OutputFormatText {
		for _, w := range response.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
		for _, e := range response.Errors {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e)
		}
	}

	var writer *os.File
	if depsOutputPath != "" {
		f, createErr := os.Create(depsOutputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}()
		writer = f
	} else {
		writer = os.Stdout
	}

	formatter := service.NewOutputFormatter()
	switch format {
	case domain.OutputFormatDOT:
		dotConfig := service.DefaultDOTFormatterConfig()
		dotConfig.MaxDepth = depsMaxDepth
		dotConfig.ShowLegend = !depsNoLegend
		dotConfig.ClusterCycles = !depsNoCycles
		dotConfig.RankDir = depsRankDir

		dotFormatter := service.NewDOTFormatter(dotConfig)
		if err := dotFormatter.WriteDependencyGraph(response, writer); err != nil {
			return fmt.Errorf("failed to write DOT output: %w", err)
		}

	case domain.OutputFormatJSON:
		if err := formatter.WriteDependencyGraph(response, format, writer); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}

	default:
		if err := formatter.WriteDependencyGraph(response, format, writer); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(writer, "\nAnalysis completed in %dms\n", duration.Milliseconds())
	}

	if depsOutputPath != "" && format != domain.OutputFormatJSON && format != domain.OutputFormatDOT {
		absPath, _ := filepath.Abs(depsOutputPath)
		fmt.Printf("Output saved to: %s\n", absPath)
	}

	return nil
}
