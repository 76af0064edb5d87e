package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"primesvc/internal/config"
)

var (
	configFormat string
	configOutput string
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage primesvc configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after defaults, config file, environment
and flags have been applied.

Examples:
  primesvc config show                 # JSON
  primesvc config show --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return cfg.Write(cmd.OutOrStdout(), configFormat)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := writeDefaultConfig(configOutput, configFormat, configForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.PersistentFlags().StringVar(&configFormat, "format", "json", "Format: json, yaml or toml")
	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "", "Output path (default: primesvc.<format>)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// writeDefaultConfig saves DefaultConfig to path, or primesvc.<format> when
// path is empty. Existing files are kept unless force is set.
func writeDefaultConfig(path, format string, force bool) (string, error) {
	if format == "" {
		format = "json"
	}
	if path == "" {
		path = "primesvc." + format
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.DefaultConfig().Save(path, format); err != nil {
		return "", err
	}
	return path, nil
}
