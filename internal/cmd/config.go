package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/prodpath/internal/config"
	"github.com/Iron-Ham/prodpath/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or create the prodpath configuration",
		Long: `View or create the prodpath configuration.

Without arguments, displays the current configuration.`,
		RunE: runConfigShow,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE:  runConfigShow,
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Long:  `Create a default config file at ~/.config/prodpath/config.yaml with all available options.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(initCmd)

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		RunE:  runConfigPath,
	})

	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	p := newPrinter(out, config.OutputConfig{Format: config.FormatYAML})
	return p.encode(cfg)
}

const defaultConfigContent = `# prodpath configuration

tree:
  # Number type for path products
  # Options: checked (int64, fails on overflow), big (exact)
  arithmetic: checked
  # Print the nodes of the best path
  show_path: false

words:
  # Words never reported by "prodpath words" (case-insensitive)
  banned: []
  # Print the N most common words (0 prints only the winner)
  top: 0

output:
  # Options: text, json, yaml
  format: text
  # Style text output when writing to a terminal
  color: true

logging:
  # Write a JSON debug log
  enabled: false
  # Options: debug, info, warn, error
  level: info
  # Directory for prodpath.log (empty: stderr)
  dir: ""
`

func runConfigInit(cmd *cobra.Command, force bool) error {
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil && !force {
		return fmt.Errorf("config file already exists at %s\nUse --force to overwrite it", configFile)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %s", filepath.Dir(configFile))
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", configFile)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintln(out, "  2. $HOME/.config/prodpath/config.yaml")
	fmt.Fprintln(out, "  3. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: PRODPATH_* (e.g., PRODPATH_TREE_ARITHMETIC)")

	return nil
}
