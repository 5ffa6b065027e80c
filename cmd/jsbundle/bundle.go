package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/internal/bundler"
	"github.com/jsbundle/jsbundle/internal/config"
	"github.com/jsbundle/jsbundle/internal/plugin"
	"github.com/jsbundle/jsbundle/service"
	"github.com/spf13/cobra"
)

var (
	bundleConfigPath  string
	bundleEntry       string
	bundleOutput      string
	bundleMinify      bool
	bundleConcurrency int
	bundleVerbose     bool
	bundleNoProgress  bool
)

func bundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle [entry]",
		Short: "Bundle a JavaScript module graph into a single file",
		Long: `Resolve every module reachable from the entry point, rewrite their
import/export syntax, and emit one self-contained bundle.

Examples:
  # Bundle using a config file discovered in the working directory
  jsbundle bundle

  # Override the entry point and output path
  jsbundle bundle src/index.js -o dist/bundle.js

  # Use an explicit config file
  jsbundle bundle -c jsbundle.config.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBundle,
	}

	cmd.Flags().StringVarP(&bundleConfigPath, "config", "c", "",
		"Path to a jsbundle config file (default: discovered in the working directory)")
	cmd.Flags().StringVarP(&bundleEntry, "entry", "e", "",
		"Entry module path (overrides config)")
	cmd.Flags().StringVarP(&bundleOutput, "output", "o", "",
		"Output bundle path (overrides config)")
	cmd.Flags().BoolVar(&bundleMinify, "minify", false,
		"Trim whitespace from every bundle line and drop blank lines (overrides config)")
	cmd.Flags().IntVar(&bundleConcurrency, "concurrency", 0,
		"Max modules transformed in parallel (0 = NumCPU, overrides config)")
	cmd.Flags().BoolVarP(&bundleVerbose, "verbose", "v", false,
		"Log each module as it's bundled (overrides config)")
	cmd.Flags().BoolVar(&bundleNoProgress, "no-progress", false,
		"Disable the progress bar")

	return cmd
}

func runBundle(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(bundleConfigPath)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		cfg.Entry = args[0]
	}
	if cmd.Flags().Changed("entry") {
		cfg.Entry = bundleEntry
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = bundleOutput
	}
	if cmd.Flags().Changed("minify") {
		cfg.Minify = bundleMinify
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = bundleConcurrency
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = bundleVerbose
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := plugin.NewRegistry()
	b, err := bundler.New(cfg, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize bundler: %w", err)
	}

	pm := service.NewProgressManager(!bundleNoProgress)
	task := pm.StartTask("bundling", -1)
	b.OnEachModule(func(rec *domain.ModuleRecord) {
		task.Describe(string(rec.Key))
		task.Increment(1)
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "bundled %s\n", rec.Key)
		}
	})

	ctx := context.Background()
	start := time.Now()
	result, err := b.Run(ctx)
	task.Complete()
	pm.Close()
	if err != nil {
		return fmt.Errorf("bundle failed: %w", err)
	}
	duration := time.Since(start)

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w.String())
	}

	if err := os.WriteFile(cfg.Output, []byte(result.Source), 0644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}

	absPath, _ := filepath.Abs(cfg.Output)
	fmt.Printf("Bundled %d modules into %s (%dms)\n", len(result.Graph.Order), absPath, duration.Milliseconds())

	return nil
}
