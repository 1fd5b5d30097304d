package engine

import (
	"math"
	"strconv"
	"strings"
)

// DeliveryDays parses the leading integer out of a delivery string such as
// "2 days". ok is false when the string does not start with a number.
func DeliveryDays(delivery string) (int, bool) {
	s := strings.TrimSpace(delivery)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// deliveryFactor maps a delivery string to the smart-score delivery weight:
// 1 day → 1.0, 2 → 0.8, 3 → 0.6, up to 5 → 0.4, anything slower or
// unparseable → 0.2.
func deliveryFactor(delivery string) float64 {
	days, ok := DeliveryDays(delivery)
	if !ok {
		return 0.2
	}
	switch days {
	case 1:
		return 1.0
	case 2:
		return 0.8
	case 3:
		return 0.6
	}
	if days <= 5 {
		return 0.4
	}
	return 0.2
}

// CheapestOffer returns the available seller with the lowest price. Ties go
// to the first seller in priority order. ok is false when no offer is
// available.
func (e *Engine) CheapestOffer(p *Product) (string, bool) {
	best := ""
	lowest := math.MaxInt
	for _, id := range e.sellersOf(p) {
		o := p.Offers[id]
		if o.Available && o.Price < lowest {
			lowest = o.Price
			best = id
		}
	}
	return best, best != ""
}

// CheapestPrice returns the minimum price among available offers, or
// (0, false) when none is available.
func (e *Engine) CheapestPrice(p *Product) (int, bool) {
	if id, ok := e.CheapestOffer(p); ok {
		return p.Offers[id].Price, true
	}
	return 0, false
}

// FastestOffer returns the available seller with the shortest parsed
// delivery-day count. Unparseable delivery strings rank as slowest. ok is
// false when no offer is available.
func (e *Engine) FastestOffer(p *Product) (string, bool) {
	best := ""
	shortest := math.MaxInt
	for _, id := range e.sellersOf(p) {
		o := p.Offers[id]
		if !o.Available {
			continue
		}
		days, ok := DeliveryDays(o.Delivery)
		if !ok {
			days = math.MaxInt
		}
		if days < shortest || best == "" {
			shortest = days
			best = id
		}
	}
	return best, best != ""
}

// FastestDeliveryDays returns the minimum parsed delivery-day count among
// available offers, or math.MaxInt when none is available or parseable.
func (e *Engine) FastestDeliveryDays(p *Product) int {
	shortest := math.MaxInt
	for _, id := range e.sellersOf(p) {
		o := p.Offers[id]
		if !o.Available {
			continue
		}
		if days, ok := DeliveryDays(o.Delivery); ok && days < shortest {
			shortest = days
		}
	}
	return shortest
}

// MaxAvailablePrice returns the maximum price among available offers, or 1
// when none is available so score division stays defined.
func (e *Engine) MaxAvailablePrice(p *Product) int {
	max := 0
	found := false
	for _, o := range p.Offers {
		if o.Available && (!found || o.Price > max) {
			max = o.Price
			found = true
		}
	}
	if !found {
		return 1
	}
	return max
}

// SmartScore computes the 0–100 composite score for one seller's offer:
// price competitiveness (30), rating (25), discount (20) and delivery speed
// (25). Absent or unavailable offers score 0.
func (e *Engine) SmartScore(p *Product, seller string) int {
	o, ok := p.Offers[seller]
	if !ok || !o.Available {
		return 0
	}
	maxPrice := float64(e.MaxAvailablePrice(p))
	priceScore := (1 - float64(o.Price)/maxPrice) * 30
	ratingScore := (o.Rating / 5) * 25
	discountScore := (float64(o.Discount) / 100) * 20
	deliveryScore := deliveryFactor(o.Delivery) * 25
	return int(math.Round(priceScore + ratingScore + discountScore + deliveryScore))
}

// BestDeal returns the available seller with the highest smart score. Ties
// keep the earlier seller in priority order; when every score is zero the
// result has an empty seller.
func (e *Engine) BestDeal(p *Product) Deal {
	best := Deal{}
	for _, id := range e.sellersOf(p) {
		o := p.Offers[id]
		if !o.Available {
			continue
		}
		if score := e.SmartScore(p, id); score > best.Score {
			best = Deal{Seller: id, Score: score}
		}
	}
	return best
}
