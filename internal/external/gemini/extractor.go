package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"google.golang.org/genai"

	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/config"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
	"github.com/saisirisha1111/pitchlens/pkg/redis"
)

const extractionPrompt = `You are a financial data extraction expert.
Extract key startup benchmark metrics from the following text.

**Text:**
%s

**Context:**
Sector: %s
Stage: %s

Extract the following metrics if present, else return null:
- avg_revenue_multiple (float)
- avg_ltv_cac_ratio (float)
- typical_runway (in months, integer)
- acceptable_burn_rate (in USD per month, float)
- seed_stage_valuation_range (object with "min" and "max" in USD)

Respond **only** in this JSON format:
{
    "avg_revenue_multiple": <float or null>,
    "avg_ltv_cac_ratio": <float or null>,
    "typical_runway": <int or null>,
    "acceptable_burn_rate": <float or null>,
    "seed_stage_valuation_range": {
        "min": <float or null>,
        "max": <float or null>
    }
}`

// Extractor is the LLM-backed text-to-benchmark extractor. It replaces the
// pattern extractor when a Gemini API key is configured.
type Extractor struct {
	client  *genai.Client
	model   string
	limiter *redis.RateLimiter
	logger  *logger.Logger
}

// New creates a Gemini extractor
func New(ctx context.Context, cfg *config.Config, limiter *redis.RateLimiter, log *logger.Logger) (*Extractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: client init failed: %w", err)
	}

	return &Extractor{
		client:  client,
		model:   cfg.Gemini.Model,
		limiter: limiter,
		logger:  log,
	}, nil
}

var _ contracts.BenchmarkExtractor = (*Extractor)(nil)

// extraction mirrors the prompt's response schema. The valuation range is
// kept separate because either bound may come back null.
type extraction struct {
	AvgRevenueMultiple *float64 `json:"avg_revenue_multiple"`
	AvgLTVCACRatio     *float64 `json:"avg_ltv_cac_ratio"`
	TypicalRunway      *float64 `json:"typical_runway"`
	AcceptableBurnRate *float64 `json:"acceptable_burn_rate"`
	ValuationRange     *struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"seed_stage_valuation_range"`
}

// Extract asks the model for structured benchmark figures from free text.
// The raw response is run through json-repair first since models routinely
// wrap JSON in markdown fences or trail commentary.
func (e *Extractor) Extract(ctx context.Context, text, sector, stage string) (*contracts.BenchmarkCandidate, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, redis.GeminiRateLimit); err != nil {
			return nil, fmt.Errorf("gemini: rate limit wait failed: %w", err)
		}
	}

	prompt := fmt.Sprintf(extractionPrompt, text, sector, stage)

	result, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: generation failed: %w", err)
	}

	raw := result.Text()
	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("gemini: response not repairable to JSON: %w", err)
	}

	var decoded extraction
	if err := json.Unmarshal([]byte(repaired), &decoded); err != nil {
		return nil, fmt.Errorf("gemini: decode failed: %w", err)
	}

	candidate := &contracts.BenchmarkCandidate{
		AvgRevenueMultiple: decoded.AvgRevenueMultiple,
		AvgLTVCACRatio:     decoded.AvgLTVCACRatio,
		TypicalRunway:      decoded.TypicalRunway,
		AcceptableBurnRate: decoded.AcceptableBurnRate,
	}
	if decoded.ValuationRange != nil && decoded.ValuationRange.Min != nil && decoded.ValuationRange.Max != nil {
		candidate.ValuationRange = &contracts.ValuationRange{
			Min: *decoded.ValuationRange.Min,
			Max: *decoded.ValuationRange.Max,
		}
	}

	e.logger.WithFields(map[string]interface{}{
		"sector": sector,
		"stage":  stage,
		"empty":  candidate.IsEmpty(),
	}).Debug("Gemini benchmark extraction completed")

	return candidate, nil
}
