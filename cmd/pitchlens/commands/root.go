package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pitchlens",
	Short: "PitchLens - startup pitch financial analysis engine",
	Long: `PitchLens Unified CLI

Financial metrics, industry benchmarks and investment scoring
for startup pitch evaluation.

Usage:
  go run ./cmd/pitchlens [command]

Examples:
  go run ./cmd/pitchlens analyze pitch.json
  go run ./cmd/pitchlens benchmark --sector SaaS --stage seed
  go run ./cmd/pitchlens api
  go run ./cmd/pitchlens test-db`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
