package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadoscout/internal/models"
	"mercadoscout/pkg/apierr"
)

func sampleProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			ID:        fmt.Sprintf("ML-%016d", i),
			Name:      fmt.Sprintf("Producto %d", i),
			Price:     float64(100 + i),
			Currency:  "MXN",
			URL:       fmt.Sprintf("https://articulo.mercadolibre.com.mx/%d", i),
			Source:    "MercadoLibre",
			DealScore: 50,
		}
	}
	return products
}

func completionServer(t *testing.T, content string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if capture != nil {
			*capture = string(body)
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestRankBest(t *testing.T) {
	content := `{"best_product_id":"ML-0000000000000002","reasoning":"deepest discount","best_time_to_buy_advice":"buy now"}`
	server := completionServer(t, content, nil)
	defer server.Close()

	a := New(server.URL, "test-key", "test-model")
	analysis, err := a.RankBest(context.Background(), sampleProducts(3))
	require.NoError(t, err)

	assert.Equal(t, "ML-0000000000000002", analysis.BestProductID)
	assert.Equal(t, "deepest discount", analysis.Reasoning)
	assert.Equal(t, "buy now", analysis.BestTimeToBuyAdvice)
}

func TestRankBestStripsCodeFences(t *testing.T) {
	content := "```json\n{\"best_product_id\":\"ML-0000000000000000\",\"reasoning\":\"ok\",\"best_time_to_buy_advice\":\"wait\"}\n```"
	server := completionServer(t, content, nil)
	defer server.Close()

	a := New(server.URL, "test-key", "test-model")
	analysis, err := a.RankBest(context.Background(), sampleProducts(1))
	require.NoError(t, err)
	assert.Equal(t, "ML-0000000000000000", analysis.BestProductID)
}

func TestRankBestTruncatesToTenProducts(t *testing.T) {
	content := `{"best_product_id":"ML-0000000000000000","reasoning":"ok","best_time_to_buy_advice":"now"}`
	var captured string
	server := completionServer(t, content, &captured)
	defer server.Close()

	a := New(server.URL, "test-key", "test-model")
	_, err := a.RankBest(context.Background(), sampleProducts(15))
	require.NoError(t, err)

	assert.Contains(t, captured, "Product 10")
	assert.NotContains(t, captured, "Product 11")
}

func TestRankBestMalformedPayload(t *testing.T) {
	server := completionServer(t, "the best product is clearly the laptop", nil)
	defer server.Close()

	a := New(server.URL, "test-key", "test-model")
	_, err := a.RankBest(context.Background(), sampleProducts(2))
	require.Error(t, err)
	assert.Equal(t, apierr.KindAnalysisMalformed, apierr.KindOf(err))
	// raw payload is carried for diagnostics
	assert.Contains(t, err.Error(), "clearly the laptop")
}

func TestRankBestMissingFields(t *testing.T) {
	server := completionServer(t, `{"best_product_id":"ML-0000000000000000"}`, nil)
	defer server.Close()

	a := New(server.URL, "test-key", "test-model")
	_, err := a.RankBest(context.Background(), sampleProducts(2))
	require.Error(t, err)
	assert.Equal(t, apierr.KindAnalysisMalformed, apierr.KindOf(err))
}

func TestRankBestServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	a := New(server.URL, "test-key", "test-model")
	_, err := a.RankBest(context.Background(), sampleProducts(2))
	require.Error(t, err)
	assert.Equal(t, apierr.KindAnalysisUnavailable, apierr.KindOf(err))
}

func TestRankBestUnconfigured(t *testing.T) {
	a := New("https://api.openai.com/v1/chat/completions", "", "test-model")
	_, err := a.RankBest(context.Background(), sampleProducts(2))
	require.Error(t, err)
	assert.Equal(t, apierr.KindAnalysisUnavailable, apierr.KindOf(err))
}

func TestRankBestEmptyBatch(t *testing.T) {
	a := New("https://api.openai.com/v1/chat/completions", "test-key", "test-model")
	_, err := a.RankBest(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
}

func TestBuildPromptSummarizesSignals(t *testing.T) {
	products := sampleProducts(1)
	products[0].PreviousPrice = 200
	products[0].DiscountPct = 50.0
	products[0].SellerRating = 4.7
	products[0].SellerReviewCount = 321

	prompt := buildPrompt(products)
	assert.Contains(t, prompt, "previous price: 200.00 MXN (50.0% off)")
	assert.Contains(t, prompt, "seller rating: 4.7 (321 reviews)")
	assert.Contains(t, prompt, "historical deal score: 50/100")
	assert.True(t, strings.Contains(prompt, `"best_product_id"`))
}
