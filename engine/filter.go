package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// typeKeywords maps broad product-type queries to the name/category keywords
// that identify matching products. A query recognized here is a "broad type
// search": description matching is suppressed for it so that e.g. "car" does
// not hit the substring inside "skincare".
var typeKeywords = map[string][]string{
	"laptop":    {"laptop", "macbook", "notebook", "ultrabook", "chromebook", "thinkpad", "vivobook", "inspiron", "pavilion", "desktop"},
	"mobile":    {"phone", "mobile", "smartphone", "iphone", "galaxy", "vivo", "oppo", "oneplus", "pixel"},
	"phone":     {"phone", "mobile", "smartphone", "iphone", "galaxy", "vivo", "oppo", "oneplus", "pixel"},
	"watch":     {"watch", "smartwatch", "apple watch", "fitbit", "garmin"},
	"headphone": {"headphone", "earphone", "airpods", "buds", "headset", "audio", "sony", "boat", "jbl", "speaker"},
	"speaker":   {"speaker", "audio", "soundbar", "boat", "jbl"},
	"car":       {"car", "automotive", "dash cam", "vacuum", "tyre", "vehicle"},
	"shoe":      {"shoe", "sneaker", "footwear", "boot", "nike", "adidas", "puma", "skechers"},
	"beauty":    {"makeup", "cosmetic", "skincare", "face", "lipstick", "serum"},
	"home":      {"furniture", "kitchen", "appliance", "lamp", "decor", "table", "chair"},
}

// openEndedSentinel is the literal the top "and above" price bracket sends;
// any max beyond openEndedFloor is treated the same way.
const (
	openEndedSentinel = 999999
	openEndedFloor    = 900000
)

// wordMatch reports whether term occurs in text on word boundaries,
// case-insensitively. Malformed terms never match.
func wordMatch(term, text string) bool {
	if term == "" {
		return false
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// Filter returns the subsequence of products satisfying every active facet
// of state. The input slice is never modified; the result preserves input
// order. Sort order in state is ignored here, see Rank.
func (e *Engine) Filter(products []Product, categories []Category, state FilterState) []Product {
	out := make([]Product, 0, len(products))
	search := newSearchPredicate(state.Search, categories)
	minPrice, maxPrice, priceActive := parsePriceRange(state.PriceRange)

	for i := range products {
		p := &products[i]
		if search != nil && !search(p) {
			continue
		}
		if state.Category != "" && p.Category != state.Category {
			continue
		}
		if state.Platform != "" {
			o, ok := p.Offers[state.Platform]
			if !ok || !o.Available {
				continue
			}
		}
		if priceActive {
			cheapest, ok := e.CheapestPrice(p)
			if !ok {
				// no purchasable offer: excluded from priced views
				continue
			}
			if cheapest < minPrice {
				continue
			}
			openEnded := maxPrice == openEndedSentinel || maxPrice > openEndedFloor
			if !openEnded && cheapest > maxPrice {
				continue
			}
		}
		out = append(out, *p)
	}
	return out
}

// parsePriceRange decodes "min-max". Non-numeric segments degrade to an open
// bound: min defaults to 0 and max to open-ended.
func parsePriceRange(s string) (min, max int, active bool) {
	if s == "" {
		return 0, 0, false
	}
	parts := strings.SplitN(s, "-", 2)
	min, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if min < 0 {
		min = 0
	}
	max = openEndedSentinel
	if len(parts) == 2 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && v > 0 {
			max = v
		}
	}
	return min, max, true
}

// newSearchPredicate builds the free-text predicate for query q, or nil when
// the query is empty. The predicate is the OR of: whole-word name match,
// category id/name match, all-tokens name match, broad-type keyword match,
// and (unless a broad type was detected) description substring match.
func newSearchPredicate(q string, categories []Category) func(*Product) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}

	var tokens []string
	for _, w := range strings.Fields(q) {
		if len(w) >= 2 {
			tokens = append(tokens, w)
		}
	}

	catNames := make(map[string]string, len(categories))
	for _, c := range categories {
		catNames[c.ID] = strings.ToLower(c.Name)
	}

	var broadKeywords []string
	for typ, keywords := range typeKeywords {
		if q == typ || (len(q) > 3 && strings.Contains(q, typ)) {
			broadKeywords = append(broadKeywords, keywords...)
		}
	}
	broad := len(broadKeywords) > 0

	return func(p *Product) bool {
		name := strings.ToLower(p.Name)
		cat := strings.ToLower(p.Category)

		if wordMatch(q, name) {
			return true
		}
		if cat == q {
			return true
		}
		if cn := catNames[cat]; cn != "" && wordMatch(q, cn) {
			return true
		}
		if len(tokens) > 0 {
			all := true
			for _, tok := range tokens {
				if !wordMatch(tok, name) {
					all = false
					break
				}
			}
			if all {
				return true
			}
		}
		if broad {
			for _, kw := range broadKeywords {
				if wordMatch(kw, name) || cat == kw {
					return true
				}
			}
		}
		if !broad && strings.Contains(strings.ToLower(p.Description), q) {
			return true
		}
		return false
	}
}
