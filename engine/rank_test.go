package engine

import (
	"reflect"
	"testing"
)

func pricedProduct(id uint, name string, price int, delivery string) Product {
	return Product{
		ID: id, Name: name,
		Offers: map[string]Offer{
			"amazon": {Price: price, Available: true, Delivery: delivery, Rating: 4, Discount: 10},
		},
	}
}

func TestRank_Relevance(t *testing.T) {
	e := New()
	in := []Product{
		pricedProduct(3, "C", 300, "1 day"),
		pricedProduct(1, "A", 100, "2 days"),
		pricedProduct(2, "B", 200, "3 days"),
	}
	got := e.Rank(in, SortRelevance)
	if !reflect.DeepEqual(ids(got), []uint{3, 1, 2}) {
		t.Errorf("relevance must keep input order, got %v", ids(got))
	}
}

func TestRank_PriceLowHigh(t *testing.T) {
	e := New()
	in := []Product{
		pricedProduct(3, "C", 300, "1 day"),
		pricedProduct(1, "A", 100, "2 days"),
		pricedProduct(2, "B", 200, "3 days"),
	}
	if got := e.Rank(in, SortPriceLow); !reflect.DeepEqual(ids(got), []uint{1, 2, 3}) {
		t.Errorf("price-low = %v, want [1 2 3]", ids(got))
	}
	if got := e.Rank(in, SortPriceHigh); !reflect.DeepEqual(ids(got), []uint{3, 2, 1}) {
		t.Errorf("price-high = %v, want [3 2 1]", ids(got))
	}
}

func TestRank_Stability(t *testing.T) {
	e := New()
	// equal cheapest prices: name order from the input must survive
	in := []Product{
		pricedProduct(1, "Alpha", 500, "1 day"),
		pricedProduct(2, "Beta", 500, "1 day"),
		pricedProduct(3, "Gamma", 500, "1 day"),
		pricedProduct(4, "Delta", 100, "1 day"),
	}
	got := e.Rank(in, SortPriceLow)
	if !reflect.DeepEqual(ids(got), []uint{4, 1, 2, 3}) {
		t.Errorf("stable sort broken: %v, want [4 1 2 3]", ids(got))
	}
}

func TestRank_Delivery(t *testing.T) {
	e := New()
	in := []Product{
		pricedProduct(1, "Slow", 100, "4 days"),
		pricedProduct(2, "Fast", 100, "1 day"),
		pricedProduct(3, "Mid", 100, "2 days"),
	}
	if got := e.Rank(in, SortDelivery); !reflect.DeepEqual(ids(got), []uint{2, 3, 1}) {
		t.Errorf("delivery = %v, want [2 3 1]", ids(got))
	}
}

func TestRank_SmartScore(t *testing.T) {
	e := New()
	in := []Product{
		{ID: 1, Name: "Weak", Offers: map[string]Offer{
			"amazon":   {Price: 100, Available: true, Rating: 2, Discount: 0, Delivery: "6 days"},
			"flipkart": {Price: 120, Available: true, Rating: 2, Discount: 0, Delivery: "6 days"},
		}},
		{ID: 2, Name: "Strong", Offers: map[string]Offer{
			"amazon":   {Price: 100, Available: true, Rating: 5, Discount: 60, Delivery: "1 day"},
			"flipkart": {Price: 150, Available: true, Rating: 4, Discount: 20, Delivery: "2 days"},
		}},
	}
	if got := e.Rank(in, SortSmartScore); !reflect.DeepEqual(ids(got), []uint{2, 1}) {
		t.Errorf("smart-score = %v, want [2 1]", ids(got))
	}
}

func TestRank_UnavailableSortsLast(t *testing.T) {
	e := New()
	dead := Product{ID: 9, Name: "Out of stock", Offers: map[string]Offer{
		"amazon":   {Price: 10, Available: false, Delivery: "1 day"},
		"flipkart": {Price: 20, Available: false, Delivery: "1 day"},
	}}
	in := []Product{dead, pricedProduct(1, "A", 100, "2 days"), pricedProduct(2, "B", 200, "3 days")}

	for _, order := range []SortOrder{SortPriceLow, SortPriceHigh, SortDelivery, SortSmartScore} {
		got := e.Rank(in, order)
		if got[len(got)-1].ID != 9 {
			t.Errorf("%s: unavailable product should sort last, got %v", order, ids(got))
		}
	}

	// relevance keeps it wherever the filter left it
	got := e.Rank(in, SortRelevance)
	if got[0].ID != 9 {
		t.Errorf("relevance should keep unavailable product in place, got %v", ids(got))
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	e := New()
	in := []Product{
		pricedProduct(2, "B", 200, "1 day"),
		pricedProduct(1, "A", 100, "1 day"),
	}
	want := ids(in)
	_ = e.Rank(in, SortPriceLow)
	if !reflect.DeepEqual(ids(in), want) {
		t.Error("Rank mutated its input slice")
	}
}

func TestQuery_FilterThenRank(t *testing.T) {
	e := New()
	got := e.Query(testCatalog(), testCategories, FilterState{
		Category: "electronics",
		Sort:     SortPriceLow,
	})
	if !reflect.DeepEqual(ids(got), []uint{104, 103}) {
		t.Errorf("Query = %v, want [104 103]", ids(got))
	}
}
