package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/saisirisha1111/pitchlens/internal/analysis"
	"github.com/saisirisha1111/pitchlens/internal/benchmark"
	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/internal/scoring"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/database"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [record.json]",
	Short: "Evaluate one startup record",
	Long: `Runs the full evaluation pipeline for a startup record read from a
JSON file (or stdin when the argument is "-").

This command:
- Calculates derived financial metrics
- Resolves industry benchmarks (store, web search, curated fallback)
- Scores the startup and renders the investment verdict

The result is printed as JSON. Pipeline failures are printed as
{"error": "..."} and the command exits 0, matching the API behavior.

Example:
  go run ./cmd/pitchlens analyze pitch.json
  cat pitch.json | go run ./cmd/pitchlens analyze -`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeOffline bool

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "skip database and redis, use curated benchmarks only")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Read the startup record
	record, err := readRecord(args[0])
	if err != nil {
		return err
	}

	// 4. Wire the pipeline
	var (
		store   contracts.BenchmarkStore
		cache   *redis.Cache
		history *analysis.Repository
		limiter *redis.RateLimiter
	)

	if !analyzeOffline {
		db, err := database.New(cfg)
		if err != nil {
			log.WithError(err).Warn("Database unavailable, continuing without benchmark store")
		} else {
			defer db.Close()
			store = benchmark.NewRepository(db.Pool)
			history = analysis.NewRepository(db.Pool)
		}

		redisClient, err := redis.New(cfg)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer redisClient.Close()
			cache = redis.NewCache(redisClient, "pitchlens")
			limiter = redis.NewRateLimiter(redisClient, "pitchlens")
		}
	}

	providers := buildProviders(cfg, limiter, log)
	extractor := buildExtractor(ctx, cfg, limiter, log)
	resolver := benchmark.NewResolver(store, providers, extractor, cache, cfg, log)
	engine := scoring.NewEngine(log)
	composer := analysis.NewComposer(resolver, engine, history, log)

	// 5. Run the evaluation
	result, err := composer.Analyze(ctx, record)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err != nil {
		return encoder.Encode(map[string]string{"error": err.Error()})
	}
	return encoder.Encode(result)
}

// readRecord loads a startup record from a file path or stdin ("-")
func readRecord(path string) (*contracts.StartupRecord, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var record contracts.StartupRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return &record, nil
}
