package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"mercadoscout/internal/models"
	"mercadoscout/logger"
	"mercadoscout/pkg/apierr"
)

// maxProducts bounds how many records are summarized into one ranking prompt
const maxProducts = 10

// Analyzer ranks a product batch through an external completion service.
// One synchronous best-effort call per request; no retry, no caching.
type Analyzer struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	model    string
	log      *logger.Logger
}

// New creates an analyzer against an OpenAI-compatible chat completions endpoint
func New(endpoint, apiKey, model string) *Analyzer {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &Analyzer{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		log:      logger.ForAnalyzer(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// RankBest submits the product batch (first maxProducts considered) and parses
// the constrained three-field JSON response. Transport and status failures are
// reported as analysis-unavailable; a payload that is not the expected JSON is
// reported as analysis-malformed with the raw text preserved.
func (a *Analyzer) RankBest(ctx context.Context, products []models.Product) (*models.Analysis, error) {
	if len(products) == 0 {
		return nil, apierr.New(apierr.KindValidation, "at least one product is required")
	}
	if a.apiKey == "" || a.endpoint == "" {
		return nil, apierr.New(apierr.KindAnalysisUnavailable, "completion service is not configured")
	}
	if len(products) > maxProducts {
		products = products[:maxProducts]
	}

	var out chatResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(a.apiKey).
		SetBody(chatRequest{
			Model:       a.model,
			Messages:    []chatMessage{{Role: "user", Content: buildPrompt(products)}},
			Temperature: 0.2,
		}).
		SetResult(&out).
		Post(a.endpoint)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindAnalysisUnavailable, "completion service call failed", err)
	}
	if resp.IsError() {
		return nil, apierr.New(apierr.KindAnalysisUnavailable,
			fmt.Sprintf("completion service returned status %d", resp.StatusCode()))
	}
	if len(out.Choices) == 0 {
		return nil, apierr.New(apierr.KindAnalysisMalformed, "completion response carried no choices")
	}

	raw := stripFences(out.Choices[0].Message.Content)

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, apierr.Wrap(apierr.KindAnalysisMalformed, "completion payload is not valid JSON: "+raw, err)
	}
	if analysis.BestProductID == "" || analysis.Reasoning == "" || analysis.BestTimeToBuyAdvice == "" {
		return nil, apierr.New(apierr.KindAnalysisMalformed, "completion payload is missing required fields: "+raw)
	}

	a.log.Debug().
		Int("products", len(products)).
		Str("best_product_id", analysis.BestProductID).
		Msg("ranking completed")

	return &analysis, nil
}

// buildPrompt concatenates one summary block per product plus the
// response-schema directive
func buildPrompt(products []models.Product) string {
	var b strings.Builder
	b.WriteString("You are a deal analyst for MercadoLibre México listings. ")
	b.WriteString("Rank the following products and pick the single best deal.\n\n")

	for i, p := range products {
		fmt.Fprintf(&b, "Product %d\n", i+1)
		fmt.Fprintf(&b, "  id: %s\n", p.ID)
		fmt.Fprintf(&b, "  name: %s\n", p.Name)
		fmt.Fprintf(&b, "  price: %.2f %s\n", p.Price, p.Currency)
		if p.PreviousPrice > p.Price {
			fmt.Fprintf(&b, "  previous price: %.2f %s (%.1f%% off)\n", p.PreviousPrice, p.Currency, p.DiscountPct)
		}
		if p.SellerRating > 0 {
			fmt.Fprintf(&b, "  seller rating: %.1f (%d reviews)\n", p.SellerRating, p.SellerReviewCount)
		}
		fmt.Fprintf(&b, "  historical deal score: %d/100\n\n", p.DealScore)
	}

	b.WriteString("Respond with a single JSON object and nothing else, with exactly these string fields: ")
	b.WriteString(`"best_product_id", "reasoning", "best_time_to_buy_advice".`)

	return b.String()
}

// stripFences removes a markdown code fence if the model wrapped its JSON in one
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
