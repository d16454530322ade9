package scraper

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mercadoscout/helpers"
	"mercadoscout/internal/models"
	"mercadoscout/logger"
	"mercadoscout/pkg/apierr"
)

const (
	sourceLabel = "MercadoLibre"
	currency    = "MXN"
)

// Scraper builds normalized product listings from a MercadoLibre search page
type Scraper struct {
	baseURL   string
	selectors Selectors
	scorer    DealScorer
	log       *logger.Logger
	fetchFunc func(url string) (io.Reader, error)
}

// New creates a scraper for the given listing base URL
func New(baseURL string, scorer DealScorer) *Scraper {
	return &Scraper{
		baseURL:   strings.TrimRight(baseURL, "/"),
		selectors: MercadoLibreSelectors(),
		scorer:    scorer,
		log:       logger.ForScraper(),
		fetchFunc: helpers.FetchWithRandomHeaders,
	}
}

// Search fetches the listing page for a query and returns the validated
// product records in document order. Records missing a name or a positive
// price are dropped, never emitted.
func (s *Scraper) Search(query string) ([]models.Product, error) {
	pageURL := s.baseURL + "/" + url.PathEscape(query)

	body, err := s.fetchFunc(pageURL)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindUpstreamFetch, "listing source fetch failed", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindUpstreamFetch, "listing page could not be parsed", err)
	}

	products := []models.Product{}
	doc.Find(s.selectors.ItemList).Each(func(_ int, item *goquery.Selection) {
		if p := s.processItem(item); p != nil {
			products = append(products, *p)
		}
	})

	s.log.Debug().
		Str("query", query).
		Int("count", len(products)).
		Msg("listing assembled")

	return products, nil
}

// processItem extracts one product record from an item fragment. Field-level
// parse failures degrade to absent values; a missing name, link or price
// excludes the record.
func (s *Scraper) processItem(item *goquery.Selection) *models.Product {
	name, ok := ExtractField(item, s.selectors.Name)
	if !ok {
		return nil
	}

	link, ok := ExtractField(item, s.selectors.Link)
	if !ok {
		return nil
	}

	price, ok := s.extractPrice(item, s.selectors.CurrentPrice)
	if !ok || price <= 0 {
		return nil
	}

	p := &models.Product{
		ID:       productID(link),
		Name:     name,
		Price:    price,
		Currency: currency,
		URL:      link,
		Source:   sourceLabel,
	}

	if image, ok := ExtractField(item, s.selectors.Image); ok {
		p.Image = image
	}

	if previous, ok := s.extractPrice(item, s.selectors.PreviousPrice); ok {
		p.PreviousPrice = previous
		if pct, ok := Discount(price, previous); ok {
			p.DiscountPct = pct
		}
	}

	if rating, ok := ExtractField(item, s.selectors.SellerRating); ok {
		if v, err := strconv.ParseFloat(rating, 64); err == nil {
			p.SellerRating = v
		}
	}

	if total, ok := ExtractField(item, s.selectors.ReviewCount); ok {
		if n, err := strconv.Atoi(strings.Trim(total, "()")); err == nil {
			p.SellerReviewCount = n
		}
	}

	p.DealScore = s.scorer.Score(*p)

	return p
}

// extractPrice tries each price container in order and normalizes the first
// one that parses
func (s *Scraper) extractPrice(item *goquery.Selection, spec PriceSpec) (float64, bool) {
	for _, container := range spec.Containers {
		scope := item
		if container != "" {
			scope = item.Find(container)
			if scope.Length() == 0 {
				continue
			}
		}

		fraction := scope.Find(spec.Fraction).First().Text()
		cents := scope.Find(spec.Cents).First().Text()

		if value, ok := ParsePrice(fraction, cents); ok {
			return value, true
		}
	}
	return 0, false
}

// productID derives a stable fingerprint from the canonical product URL
// (query and fragment stripped), so the same listing keeps its id across
// re-scrapes.
func productID(rawURL string) string {
	canonical := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		u.RawQuery = ""
		u.Fragment = ""
		canonical = u.String()
	}
	sum := sha1.Sum([]byte(canonical))
	return "ML-" + hex.EncodeToString(sum[:])[:16]
}
