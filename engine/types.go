// Package engine implements the product comparison core: per-seller pricing
// utilities, the faceted filter pass, and result ranking. All functions are
// pure: they take catalog snapshots and return derived values without
// touching storage or mutating their input.
package engine

// Offer is one seller's listing for a product.
type Offer struct {
	MRP         int     `json:"mrp"`
	Price       int     `json:"price"`
	Rating      float64 `json:"rating"`
	Discount    int     `json:"discount"`
	Delivery    string  `json:"delivery"`
	Available   bool    `json:"available"`
	URL         string  `json:"url"`
	Description string  `json:"description,omitempty"`
}

// Product is the engine's view of a catalog row. Offers is keyed by seller id
// ("amazon", "flipkart", ...).
type Product struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Trending    bool             `json:"trending"`
	Offers      map[string]Offer `json:"platforms"`
}

// Category is the static reference entry used for search id-to-name resolution.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SortOrder selects the ranking comparator.
type SortOrder string

const (
	SortRelevance  SortOrder = "relevance"
	SortPriceLow   SortOrder = "price-low"
	SortPriceHigh  SortOrder = "price-high"
	SortDelivery   SortOrder = "delivery"
	SortSmartScore SortOrder = "smart-score"
)

// FilterState holds the active facets. An empty field means the facet is off.
type FilterState struct {
	Category   string    `json:"category"`
	Platform   string    `json:"platform"`
	PriceRange string    `json:"price_range"`
	Sort       SortOrder `json:"sort"`
	Search     string    `json:"search"`
}

// Deal is the best-deal result for a product: the winning seller and its
// smart score. Seller is empty when no available offer scores above zero.
type Deal struct {
	Seller string `json:"seller"`
	Score  int    `json:"score"`
}

// DefaultSellers is the seller priority order used for tie-breaks when the
// caller does not supply one. It matches the seed catalog's seller order.
var DefaultSellers = []string{"amazon", "flipkart"}

// Engine evaluates pricing, filtering and ranking over product snapshots.
// The seller list fixes iteration order so tie-breaks are deterministic.
type Engine struct {
	sellers []string
}

// New returns an Engine with the given seller priority order, falling back
// to DefaultSellers when none is given.
func New(sellers ...string) *Engine {
	if len(sellers) == 0 {
		sellers = DefaultSellers
	}
	return &Engine{sellers: sellers}
}

// sellersOf returns the product's seller ids in priority order: sellers from
// the engine's list first, then any remaining map keys in lexical order.
func (e *Engine) sellersOf(p *Product) []string {
	out := make([]string, 0, len(p.Offers))
	seen := make(map[string]bool, len(p.Offers))
	for _, id := range e.sellers {
		if _, ok := p.Offers[id]; ok {
			out = append(out, id)
			seen[id] = true
		}
	}
	if len(out) == len(p.Offers) {
		return out
	}
	rest := make([]string, 0, len(p.Offers)-len(out))
	for id := range p.Offers {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	// insertion sort; the remainder is tiny
	for i := 1; i < len(rest); i++ {
		for j := i; j > 0 && rest[j] < rest[j-1]; j-- {
			rest[j], rest[j-1] = rest[j-1], rest[j]
		}
	}
	return append(out, rest...)
}
