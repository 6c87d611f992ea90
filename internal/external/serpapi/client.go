package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/httputil"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

const resultsPerQuery = 10

// Client is the primary search provider, backed by the SerpAPI Google
// search endpoint.
type Client struct {
	http    *httputil.Client
	baseURL string
	apiKey  string
	logger  *logger.Logger
}

// New creates a SerpAPI search client. Requests go through the shared
// retrying HTTP client with the SerpAPI rate limit applied.
func New(cfg *config.Config, limiter *redis.RateLimiter, log *logger.Logger) *Client {
	httpClient := httputil.NewWithTimeout(cfg, log, cfg.Search.Timeout)
	if limiter != nil {
		httpClient = httpClient.WithRateLimiter(limiter, redis.SerpAPIRateLimit)
	}

	return &Client{
		http:    httpClient,
		baseURL: cfg.Search.SerpAPIBaseURL,
		apiKey:  cfg.Search.SerpAPIKey,
		logger:  log,
	}
}

var _ contracts.SearchProvider = (*Client)(nil)

// Name identifies the provider in resolver logs
func (c *Client) Name() string {
	return "serpapi"
}

type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
}

type organicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Search runs one query and returns the organic results
func (c *Client) Search(ctx context.Context, query string) ([]contracts.SearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("serpapi: API key not configured")
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", resultsPerQuery))
	params.Set("api_key", c.apiKey)

	resp, err := c.http.Get(ctx, fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("serpapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("serpapi: unexpected status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("serpapi: decode failed: %w", err)
	}

	results := make([]contracts.SearchResult, 0, len(decoded.OrganicResults))
	for _, r := range decoded.OrganicResults {
		if r.Title == "" && r.Snippet == "" {
			continue
		}
		results = append(results, contracts.SearchResult{Title: r.Title, Snippet: r.Snippet})
	}

	c.logger.WithFields(map[string]interface{}{
		"query":   query,
		"results": len(results),
	}).Debug("SerpAPI search completed")

	return results, nil
}
