package scraper

import "mercadoscout/internal/models"

// DealScorer supplies the historical deal score for a product. The score is
// an external signal injected into the pipeline, in the 1..100 range.
type DealScorer interface {
	Score(p models.Product) int
}

// DiscountScorer derives the score from the advertised discount and seller
// rating. Stand-in until a real price-history source is wired in.
type DiscountScorer struct{}

// Score returns a deterministic score in 1..100
func (DiscountScorer) Score(p models.Product) int {
	score := 50
	if pct, ok := Discount(p.Price, p.PreviousPrice); ok {
		score += int(pct / 2)
	}
	if p.SellerRating >= 4.5 && p.SellerReviewCount >= 10 {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	if score < 1 {
		score = 1
	}
	return score
}
