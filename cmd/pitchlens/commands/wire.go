package commands

import (
	"context"

	"github.com/saisirisha1111/pitchlens/internal/benchmark"
	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/internal/external/gemini"
	"github.com/saisirisha1111/pitchlens/internal/external/googlecse"
	"github.com/saisirisha1111/pitchlens/internal/external/serpapi"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

// buildProviders creates the configured search providers in fallback order:
// SerpAPI primary, Google CSE secondary. Providers without credentials are
// skipped so the resolver falls through to the curated tier.
func buildProviders(cfg *config.Config, limiter *redis.RateLimiter, log *logger.Logger) []contracts.SearchProvider {
	var providers []contracts.SearchProvider

	if cfg.Search.SerpAPIKey != "" {
		providers = append(providers, serpapi.New(cfg, limiter, log))
	}
	if cfg.Search.GoogleSearchKey != "" && cfg.Search.GoogleSearchEngineID != "" {
		providers = append(providers, googlecse.New(cfg, limiter, log))
	}

	if len(providers) == 0 {
		log.Warn("No search providers configured, benchmark resolution will use store and curated tiers only")
	}

	return providers
}

// buildExtractor selects the text-to-benchmark extractor: Gemini when
// enabled, the regex pattern extractor otherwise. A Gemini init failure
// degrades to the pattern extractor instead of aborting.
func buildExtractor(ctx context.Context, cfg *config.Config, limiter *redis.RateLimiter, log *logger.Logger) contracts.BenchmarkExtractor {
	if cfg.Gemini.Enabled && cfg.Gemini.APIKey != "" {
		extractor, err := gemini.New(ctx, cfg, limiter, log)
		if err == nil {
			log.WithField("model", cfg.Gemini.Model).Info("Using Gemini benchmark extractor")
			return extractor
		}
		log.WithError(err).Warn("Gemini extractor unavailable, falling back to pattern extractor")
	}
	return benchmark.NewPatternExtractor()
}
