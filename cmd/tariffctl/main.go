// Command tariffctl is the command-line front end of the port tariff calculator.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"porttariff/internal/bootstrap"
	"porttariff/internal/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tariffctl",
	Short: "Calculate port dues from a port tariff document",
	Long: `tariffctl calculates port dues for a vessel call.

Rules are extracted once from the tariff PDF and stored (file, S3 or Postgres,
per TARIFF_RULES_STORE); calculations run against the stored rules.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("ignoring .env: %v", err)
		}
		if !verbose {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFlags(0)
			log.SetPrefix("tariffctl: ")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log with the configured TARIFF_LOG_FORMAT and TARIFF_LOG_LEVEL flags")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(extractRulesCmd)
	rootCmd.AddCommand(duesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp loads configuration and wires the services.
func newApp() (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		log.SetFlags(cfg.Log.Flags())
	}
	return bootstrap.New(cfg)
}
