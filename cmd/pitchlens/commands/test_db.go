package commands

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/database"
)

// testDBCmd represents the test-db command
var testDBCmd = &cobra.Command{
	Use:   "test-db",
	Short: "Test the PostgreSQL connection",
	Long: `Tests the database connection and displays pool statistics.

This command:
- Loads DATABASE_URL from config
- Creates a database connection
- Runs a ping test and health check
- Displays connection pool statistics

Example:
  go run ./cmd/pitchlens test-db
  go run ./cmd/pitchlens test-db --env production`,
	RunE: runTestDB,
}

func init() {
	rootCmd.AddCommand(testDBCmd)
}

func runTestDB(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PitchLens Database Connection Test ===")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fmt.Printf("Config loaded (ENV: %s)\n", cfg.Env)
	fmt.Printf("   Database URL: %s\n\n", maskPassword(cfg.Database.URL))

	// Create database connection
	fmt.Println("Connecting to database...")
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	fmt.Println("Database connection established")

	// Ping test
	fmt.Println("Testing connection (Ping)...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	fmt.Println("Ping successful")

	// Health check
	fmt.Println("Running health check...")
	health, err := db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Printf("\nHealthy: %t (response time: %s)\n", health.Healthy, health.ResponseTime)
	fmt.Printf("Pool stats:\n")
	fmt.Printf("   Total connections: %d\n", health.Stats.TotalConns)
	fmt.Printf("   Idle connections:  %d\n", health.Stats.IdleConns)
	fmt.Printf("   Acquired:          %d\n", health.Stats.AcquiredConns)
	fmt.Printf("   Max connections:   %d\n", health.Stats.MaxConns)

	return nil
}

// maskPassword hides the password portion of a database URL for display
func maskPassword(databaseURL string) string {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "(unparseable)"
	}
	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "****")
		}
	}
	return strings.ReplaceAll(parsed.String(), "%2A%2A%2A%2A", "****")
}
