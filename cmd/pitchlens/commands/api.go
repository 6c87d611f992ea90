package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saisirisha1111/pitchlens/internal/analysis"
	"github.com/saisirisha1111/pitchlens/internal/api"
	"github.com/saisirisha1111/pitchlens/internal/api/handlers"
	"github.com/saisirisha1111/pitchlens/internal/benchmark"
	"github.com/saisirisha1111/pitchlens/internal/scoring"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/database"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                - Health check
  POST /api/v1/evaluate       - Evaluate a startup record
  GET  /api/v1/evaluations    - Recent evaluation history
  GET  /api/v1/benchmarks     - Resolve benchmarks for sector/stage

Example:
  go run ./cmd/pitchlens api
  go run ./cmd/pitchlens api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PitchLens API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to redis (optional)
	var (
		cache   *redis.Cache
		limiter *redis.RateLimiter
	)
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
	} else {
		defer redisClient.Close()
		cache = redis.NewCache(redisClient, "pitchlens")
		limiter = redis.NewRateLimiter(redisClient, "pitchlens")
	}

	// 5. Wire the pipeline
	ctx := context.Background()
	store := benchmark.NewRepository(db.Pool)
	history := analysis.NewRepository(db.Pool)
	providers := buildProviders(cfg, limiter, log)
	extractor := buildExtractor(ctx, cfg, limiter, log)
	resolver := benchmark.NewResolver(store, providers, extractor, cache, cfg, log)
	engine := scoring.NewEngine(log)
	composer := analysis.NewComposer(resolver, engine, history, log)

	// 6. Create handlers and router
	evalHandler := handlers.NewEvaluationHandler(composer, history, log)
	benchHandler := handlers.NewBenchmarkHandler(resolver, log)
	router := api.NewRouter(evalHandler, benchHandler, log)

	// 7. Start server with graceful shutdown
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/v1/evaluate")
	fmt.Println("  GET  /api/v1/evaluations")
	fmt.Println("  GET  /api/v1/benchmarks")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
