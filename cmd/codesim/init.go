package main

import (
	"fmt"
	"path/filepath"

	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/service"
	"github.com/spf13/cobra"
)

// InitCommand represents the init command
type InitCommand struct {
	force      bool
	configPath string
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{
		configPath: config.ConfigFileName,
	}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize codesim configuration file",
		Long: `Initialize a codesim configuration file in the current directory.

Creates a .codesim.toml file with every setting and its default value.
codesim looks for this file in the working directory and its parents.

Examples:
  # Create .codesim.toml in current directory
  codesim init

  # Overwrite existing configuration file
  codesim init --force`,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&i.configPath, "config", "c", i.configPath, "Configuration file path")

	return cmd
}

// runInit executes the init command
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	configPath, err := filepath.Abs(i.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if err := service.NewConfigurationLoader().CreateConfigTemplate(configPath, i.force); err != nil {
		return err
	}

	relPath, err := filepath.Rel(".", configPath)
	if err != nil {
		relPath = configPath
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", relPath)
	fmt.Fprintf(cmd.OutOrStdout(), "\nEdit %s to change the defaults for this project.\n", relPath)
	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
