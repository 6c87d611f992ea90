package googlecse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/httputil"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

// Custom Search caps num at 10
const resultsPerQuery = 10

// Client is the secondary search provider, backed by the Google Custom
// Search JSON API.
type Client struct {
	http     *httputil.Client
	baseURL  string
	apiKey   string
	engineID string
	logger   *logger.Logger
}

// New creates a Google CSE search client
func New(cfg *config.Config, limiter *redis.RateLimiter, log *logger.Logger) *Client {
	httpClient := httputil.NewWithTimeout(cfg, log, cfg.Search.Timeout)
	if limiter != nil {
		httpClient = httpClient.WithRateLimiter(limiter, redis.GoogleCSERateLimit)
	}

	return &Client{
		http:     httpClient,
		baseURL:  cfg.Search.GoogleSearchBaseURL,
		apiKey:   cfg.Search.GoogleSearchKey,
		engineID: cfg.Search.GoogleSearchEngineID,
		logger:   log,
	}
}

var _ contracts.SearchProvider = (*Client)(nil)

// Name identifies the provider in resolver logs
func (c *Client) Name() string {
	return "google_cse"
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	HTMLSnippet string `json:"htmlSnippet"`
}

// Search runs one query against the custom search engine
func (c *Client) Search(ctx context.Context, query string) ([]contracts.SearchResult, error) {
	if c.apiKey == "" || c.engineID == "" {
		return nil, fmt.Errorf("googlecse: API key or engine ID not configured")
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", resultsPerQuery))

	resp, err := c.http.Get(ctx, fmt.Sprintf("%s?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("googlecse: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("googlecse: unexpected status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("googlecse: decode failed: %w", err)
	}

	results := make([]contracts.SearchResult, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		snippet := item.Snippet
		if snippet == "" && item.HTMLSnippet != "" {
			snippet = stripHTML(item.HTMLSnippet)
		}
		if item.Title == "" && snippet == "" {
			continue
		}
		results = append(results, contracts.SearchResult{Title: item.Title, Snippet: snippet})
	}

	c.logger.WithFields(map[string]interface{}{
		"query":   query,
		"results": len(results),
	}).Debug("Google CSE search completed")

	return results, nil
}

// stripHTML extracts plain text from an htmlSnippet, which Google returns
// with <b> highlights and entity escapes.
func stripHTML(snippet string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return snippet
	}
	return strings.TrimSpace(doc.Text())
}
