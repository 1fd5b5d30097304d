package engine

import (
	"math"
	"sort"
)

// Rank reorders products by the given sort order and returns a new slice.
// The sort is stable, so equal-key products keep their filter-output order.
// SortRelevance (and anything unrecognized) is a no-op copy.
func (e *Engine) Rank(products []Product, order SortOrder) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch order {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return e.cheapestOrInf(&out[i]) < e.cheapestOrInf(&out[j])
		})
	case SortPriceHigh:
		// unavailable-only products still sort last, so the descending key
		// treats them as -infinity rather than +infinity
		sort.SliceStable(out, func(i, j int) bool {
			return e.cheapestOrNegInf(&out[i]) > e.cheapestOrNegInf(&out[j])
		})
	case SortDelivery:
		sort.SliceStable(out, func(i, j int) bool {
			return e.FastestDeliveryDays(&out[i]) < e.FastestDeliveryDays(&out[j])
		})
	case SortSmartScore:
		sort.SliceStable(out, func(i, j int) bool {
			return e.BestDeal(&out[i]).Score > e.BestDeal(&out[j]).Score
		})
	}
	return out
}

// Query runs the full filter-then-rank pass for one filter state.
func (e *Engine) Query(products []Product, categories []Category, state FilterState) []Product {
	return e.Rank(e.Filter(products, categories, state), state.Sort)
}

// cheapestOrInf is the price-sort key: products with no available offer sort
// after everything else.
func (e *Engine) cheapestOrInf(p *Product) float64 {
	if price, ok := e.CheapestPrice(p); ok {
		return float64(price)
	}
	return math.Inf(1)
}

func (e *Engine) cheapestOrNegInf(p *Product) float64 {
	if price, ok := e.CheapestPrice(p); ok {
		return float64(price)
	}
	return math.Inf(-1)
}
