package contracts

import (
	"context"
	"time"
)

// BenchmarkStore persists resolved benchmark sets keyed by (sector, stage).
// Get returns (nil, nil) when no row exists. Inserts for the same key are
// idempotent upserts; concurrent writers are harmless.
type BenchmarkStore interface {
	Get(ctx context.Context, sector, stage string) (*BenchmarkSet, error)
	Insert(ctx context.Context, sector, stage string, benchmarks BenchmarkSet) error
	ListStale(ctx context.Context, olderThan time.Duration) ([]SectorStage, error)
}

// SearchProvider runs one web query and returns organic results.
// Used only to gather text for the benchmark extractor.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// BenchmarkExtractor turns free text into a partial benchmark candidate.
// Implementations may be pattern-based or LLM-based; the resolver treats
// them as opaque.
type BenchmarkExtractor interface {
	Extract(ctx context.Context, text, sector, stage string) (*BenchmarkCandidate, error)
}
