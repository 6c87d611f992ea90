package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saisirisha1111/pitchlens/internal/benchmark"
	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/database"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

// benchmarkCmd represents the benchmark command
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Resolve industry benchmarks for a sector/stage pair",
	Long: `Resolves industry benchmarks through the full fallback chain and
prints the result with its data_source tag.

Example:
  go run ./cmd/pitchlens benchmark --sector SaaS --stage seed
  go run ./cmd/pitchlens benchmark --sector FinTech --stage series_a`,
	RunE: runBenchmark,
}

var (
	benchmarkSector string
	benchmarkStage  string
)

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	benchmarkCmd.Flags().StringVar(&benchmarkSector, "sector", "", "startup sector (e.g. SaaS, FinTech)")
	benchmarkCmd.Flags().StringVar(&benchmarkStage, "stage", "seed", "funding stage (e.g. seed, series_a)")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Wire the resolver
	var (
		store   contracts.BenchmarkStore
		cache   *redis.Cache
		limiter *redis.RateLimiter
	)

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Database unavailable, continuing without benchmark store")
	} else {
		defer db.Close()
		store = benchmark.NewRepository(db.Pool)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
	} else {
		defer redisClient.Close()
		cache = redis.NewCache(redisClient, "pitchlens")
		limiter = redis.NewRateLimiter(redisClient, "pitchlens")
	}

	providers := buildProviders(cfg, limiter, log)
	extractor := buildExtractor(ctx, cfg, limiter, log)
	resolver := benchmark.NewResolver(store, providers, extractor, cache, cfg, log)

	// 4. Resolve and print
	benchmarks, err := resolver.Resolve(ctx, benchmarkSector, benchmarkStage)
	if err != nil {
		return fmt.Errorf("resolve benchmarks: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(benchmarks)
}
