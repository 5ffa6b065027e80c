package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsbundle/jsbundle/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a jsbundle configuration file",
		Long: `Generate a documented jsbundle configuration file with sensible defaults.

By default, creates jsbundle.config.yml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create jsbundle.config.yml in current directory
  jsbundle init

  # Custom output path
  jsbundle init --config custom.yml

  # Overwrite existing file
  jsbundle init --force

  # Generate a smaller config with essential options only
  jsbundle init --minimal

  # Interactive setup wizard
  jsbundle init --interactive
  jsbundle init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", "jsbundle.config.yml",
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	entry := "src/index.js"
	output := "dist/bundle.js"

	if interactive {
		var err error
		var interactiveConfigPath string
		entry, output, interactiveConfigPath, err = runInteractiveSetup(entry, output, configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate(entry, output)
	} else {
		content = config.GetFullConfigTemplate(entry, output, config.ProjectTypeGeneric)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'jsbundle bundle' to build your project.")

	return nil
}

func runInteractiveSetup(defaultEntry, defaultOutput, defaultConfigPath string) (string, string, string, error) {
	fmt.Println()
	fmt.Println("jsbundle Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	entryPrompt := promptui.Prompt{
		Label:   "Entry module path",
		Default: defaultEntry,
	}
	entry, err := entryPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("entry input cancelled: %w", err)
	}
	if entry == "" {
		entry = defaultEntry
	}

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Bundle output path",
		Default: defaultOutput,
	}
	output, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output input cancelled: %w", err)
	}
	if output == "" {
		output = defaultOutput
	}

	fmt.Println()

	configPathPrompt := promptui.Prompt{
		Label:   "Config file path",
		Default: defaultConfigPath,
	}
	configPath, err := configPathPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("config path input cancelled: %w", err)
	}
	if configPath == "" {
		configPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... \n", configPath)

	return entry, output, configPath, nil
}
