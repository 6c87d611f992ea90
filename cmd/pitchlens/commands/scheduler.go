package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saisirisha1111/pitchlens/internal/benchmark"
	"github.com/saisirisha1111/pitchlens/internal/scheduler"
	"github.com/saisirisha1111/pitchlens/internal/scheduler/jobs"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/database"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the background scheduler",
	Long: `Starts the scheduler daemon or manages its jobs.

Registered jobs:
- refresh_benchmarks: re-runs the external search for benchmark rows
  older than the refresh window (default: weekly, Monday 03:00)

Subcommands:
  start  - start the scheduler daemon
  run    - run a specific job immediately

Example:
  go run ./cmd/pitchlens scheduler start
  go run ./cmd/pitchlens scheduler run refresh_benchmarks`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		RunE:  runScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a specific job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// buildScheduler wires the scheduler with its jobs. The returned cleanup
// closes the database and redis connections.
func buildScheduler() (*scheduler.Scheduler, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	var (
		cache   *redis.Cache
		limiter *redis.RateLimiter
	)
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		redisClient = nil
	} else {
		cache = redis.NewCache(redisClient, "pitchlens")
		limiter = redis.NewRateLimiter(redisClient, "pitchlens")
	}

	cleanup := func() {
		db.Close()
		if redisClient != nil {
			redisClient.Close()
		}
	}

	ctx := context.Background()
	store := benchmark.NewRepository(db.Pool)
	providers := buildProviders(cfg, limiter, log)
	extractor := buildExtractor(ctx, cfg, limiter, log)
	resolver := benchmark.NewResolver(store, providers, extractor, cache, cfg, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewRefreshBenchmarksJob(store, resolver, cfg, log)); err != nil {
		cleanup()
		return nil, nil, err
	}

	return sched, cleanup, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PitchLens Scheduler ===")

	sched, cleanup, err := buildScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	sched.Start()
	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, cleanup, err := buildScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("Running job %s...\n", jobName)
	if err := sched.RunJob(jobName); err != nil {
		return err
	}

	// RunJob is asynchronous; wait for an interrupt so the job can finish
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
