package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/server"
	"firegate-hq/firegate/pkg/telemetry/logging"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	mock          bool
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Firegate proxy",
	Long: `Start the Firegate proxy with the specified configuration.

The proxy listens on the configured address, routes LLM API requests to
the matching provider, and enforces the security filter chain before
any upstream call.

Examples:
  # Start with default config
  firegate run

  # Start with custom config
  firegate run --config /etc/firegate/config.yaml

  # Override listen address
  firegate run --listen 0.0.0.0:8080

  # Validate config without starting
  firegate run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.mock, "mock", false, "serve canned responses without contacting upstreams")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if runFlags.mock {
		cfg.MockResponses = true
	}

	if runFlags.dryRun {
		fmt.Println("configuration is valid")
		return nil
	}

	logger := logging.NewLogger(cfg.Telemetry.Logging)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}
	return srv.Start(context.Background())
}
