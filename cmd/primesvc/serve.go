package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"primesvc/internal/api"
	"primesvc/internal/slogutil"
	"primesvc/internal/tracing"
	"primesvc/internal/version"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start the primesvc HTTP server. POST a JSON body such as
{"start":1,"end":10} to /primes to receive [1,2,3,5,7].`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 9000, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Host to bind to")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := slogutil.New(os.Stderr, cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	shutdownTracing, err := tracing.Setup("primesvc", version.Version, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err.Error())
		}
	}()

	server := api.NewServer(cfg, logger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", "error", err.Error())
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", "error", err.Error())
			return err
		}

		logger.Info("Server stopped gracefully")
	}

	return nil
}
