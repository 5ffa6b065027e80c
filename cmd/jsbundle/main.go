package main

import (
	"fmt"
	"os"

	"github.com/jsbundle/jsbundle/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jsbundle",
		Short: "jsbundle - a synchronous CommonJS-style bundler for JavaScript",
		Long: `jsbundle resolves a JavaScript module graph starting from an entry
point, rewrites import/export syntax into a small require() runtime, and
emits a single self-contained bundle file.`,
		Version: Version,
	}

	rootCmd.AddCommand(bundleCmd())
	rootCmd.AddCommand(depsCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("jsbundle version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
