package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"primesvc/internal/config"
	"primesvc/internal/version"
)

var (
	configFile   string
	envFile      string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "primesvc",
	Short: "primesvc - prime numbers in a range over HTTP",
	Long: `primesvc answers POST /primes with every prime in an inclusive
range of unsigned 32-bit integers, using trial division.`,
	Version:       version.Info().Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Info().String() + "\n")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default: ./primesvc.{json,yaml,toml} or $HOME/.primesvc/)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"Load environment variables from this file (default: ./.env when present)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn or error (overrides logging.level)")
}

// loadConfig resolves configuration.
// Precedence: CLI flags > PRIMESVC_* env (including --env-file) > config file > defaults
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
