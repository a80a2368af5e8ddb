package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "firegate",
	Short: "Firegate - security-focused LLM reverse proxy",
	Long: `Firegate is a reverse proxy for LLM API traffic. It routes requests
across OpenAI-compatible, Anthropic, and Cerebras backends, enforces a
security filter chain before any upstream call, relays buffered and
streamed responses unchanged, and keeps a redacted audit trail of every
exchange.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
}
