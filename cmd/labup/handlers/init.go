package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/jbemmel/labup/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfigFile writes the config to a file.
	writeConfigFile = config.Save

	// stdoutIsTTY reports whether stdout is an interactive terminal.
	stdoutIsTTY = isInteractiveTTY
)

// Init creates a lab configuration file.
//
// On an interactive terminal the wizard asks for the lab settings;
// otherwise, or with useDefaults, a default configuration is written.
// An existing file is refused unless force is given, so scripted runs
// never silently clobber a hand-edited config.
func Init(ctx context.Context, outputPath string, useDefaults, force bool) error {
	if outputPath == "" {
		outputPath = config.DefaultConfigFilename
	}

	if fileExists(outputPath) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", outputPath)
	}

	var cfg *config.Config
	if useDefaults || !stdoutIsTTY() {
		cfg = config.Default()
	} else {
		printWelcome()

		result, err := runWizard(ctx)
		if err != nil {
			return err
		}
		cfg = result.ToConfig()
	}

	if err := writeConfigFile(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("labup - containerlab bringup")
	fmt.Println("============================")
	fmt.Println()
	fmt.Println("This wizard creates a lab configuration with sensible defaults.")
	fmt.Println("Just answer a few questions.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Lab Summary")
	fmt.Println("-----------")
	fmt.Printf("  Name:     %s\n", cfg.Name)
	fmt.Printf("  Topology: %s\n", cfg.Topology)
	fmt.Printf("  Runtime:  %s\n", cfg.GetRuntime())
	fmt.Printf("  Probe:    %s as %s, every %s\n", cfg.Probe.GetMode(), cfg.Probe.GetUsername(), cfg.Probe.RetryInterval())
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Bring your lab up:")
	fmt.Printf("     labup up\n")
	fmt.Println()
}
