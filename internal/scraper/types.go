package scraper

// FieldCandidate names one place a field may live inside an item fragment.
// An empty Attr reads the element's text; otherwise the named attribute is read.
type FieldCandidate struct {
	Selector string
	Attr     string
}

// FieldSpec is an ordered candidate chain; the first candidate present in the
// fragment wins.
type FieldSpec []FieldCandidate

// PriceSpec locates a price container and the fraction/cents nodes inside it.
// Containers are tried in order; an empty container selector means the item
// fragment itself.
type PriceSpec struct {
	Containers []string
	Fraction   string
	Cents      string
}

// Selectors contains the per-field candidate chains for a listing page
type Selectors struct {
	ItemList      string
	Name          FieldSpec
	Link          FieldSpec
	Image         FieldSpec
	CurrentPrice  PriceSpec
	PreviousPrice PriceSpec
	SellerRating  FieldSpec
	ReviewCount   FieldSpec
}

// MercadoLibreSelectors returns the candidate chains for the MX listing page.
// Newer pages use the poly-component markup; the ui-search classes remain as
// fallbacks for the older layout.
func MercadoLibreSelectors() Selectors {
	return Selectors{
		ItemList: "li.ui-search-layout__item",
		Name: FieldSpec{
			{Selector: "h3.poly-component__title-wrapper"},
			{Selector: "a.poly-component__title"},
			{Selector: "h2.ui-search-item__title"},
		},
		Link: FieldSpec{
			{Selector: "a.poly-component__title", Attr: "href"},
			{Selector: "a.ui-search-link", Attr: "href"},
			{Selector: "a", Attr: "href"},
		},
		Image: FieldSpec{
			// lazy-load attribute carries the real URL; src is a placeholder
			{Selector: "img.poly-component__picture", Attr: "data-src"},
			{Selector: "img.poly-component__picture", Attr: "src"},
			{Selector: "img", Attr: "data-src"},
			{Selector: "img", Attr: "src"},
		},
		CurrentPrice: PriceSpec{
			Containers: []string{"div.poly-price__current", "div.ui-search-price__second-line", ""},
			Fraction:   "span.andes-money-amount__fraction",
			Cents:      "span.andes-money-amount__cents",
		},
		PreviousPrice: PriceSpec{
			Containers: []string{"s.andes-money-amount--previous", "span.ui-search-price__original-value"},
			Fraction:   "span.andes-money-amount__fraction",
			Cents:      "span.andes-money-amount__cents",
		},
		SellerRating: FieldSpec{
			{Selector: "span.poly-reviews__rating"},
			{Selector: "span.ui-search-reviews__rating-number"},
		},
		ReviewCount: FieldSpec{
			{Selector: "span.poly-reviews__total"},
			{Selector: "span.ui-search-reviews__amount"},
		},
	}
}
