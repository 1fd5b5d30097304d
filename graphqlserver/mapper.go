package graphqlserver

import (
	"sort"

	"github.com/diyashah3011/SmartPriceMonitor/engine"
	gqlmodels "github.com/diyashah3011/SmartPriceMonitor/graphql/models"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sortedSellers(offers map[string]engine.Offer) []string {
	out := make([]string, 0, len(offers))
	for seller := range offers {
		out = append(out, seller)
	}
	sort.Strings(out)
	return out
}

func toProduct(eng *engine.Engine, p *engine.Product) *gqlmodels.Product {
	out := &gqlmodels.Product{
		ID:          int32(p.ID),
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Trending:    p.Trending,
		Offers:      make([]*gqlmodels.Offer, 0, len(p.Offers)),
	}
	for _, seller := range sortedSellers(p.Offers) {
		o := p.Offers[seller]
		out.Offers = append(out.Offers, &gqlmodels.Offer{
			Seller:    seller,
			Mrp:       int32(o.MRP),
			Price:     int32(o.Price),
			Rating:    o.Rating,
			Discount:  int32(o.Discount),
			Delivery:  o.Delivery,
			Available: o.Available,
			URL:       o.URL,
		})
	}
	if deal := eng.BestDeal(p); deal.Seller != "" {
		out.BestDeal = &gqlmodels.Deal{Seller: deal.Seller, Score: int32(deal.Score)}
	}
	if seller, ok := eng.CheapestOffer(p); ok {
		price := int32(p.Offers[seller].Price)
		s := seller
		out.CheapestSeller = &s
		out.CheapestPrice = &price
	}
	return out
}

func toProductList(eng *engine.Engine, products []engine.Product) *gqlmodels.ProductList {
	items := make([]*gqlmodels.Product, len(products))
	for i := range products {
		items[i] = toProduct(eng, &products[i])
	}
	return &gqlmodels.ProductList{Items: items, Total: int32(len(items))}
}
