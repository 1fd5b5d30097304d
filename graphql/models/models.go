// Package models defines the GraphQL response shapes. The mapstructure tags
// let extension resolvers decode generic maps into these types.
package models

type Product struct {
	ID             int32    `json:"id" mapstructure:"id"`
	Name           string   `json:"name" mapstructure:"name"`
	Category       string   `json:"category" mapstructure:"category"`
	Description    string   `json:"description" mapstructure:"description"`
	Image          string   `json:"image" mapstructure:"image"`
	Trending       bool     `json:"trending" mapstructure:"trending"`
	Offers         []*Offer `json:"offers" mapstructure:"offers"`
	BestDeal       *Deal    `json:"best_deal,omitempty" mapstructure:"best_deal"`
	CheapestSeller *string  `json:"cheapest_seller,omitempty" mapstructure:"cheapest_seller"`
	CheapestPrice  *int32   `json:"cheapest_price,omitempty" mapstructure:"cheapest_price"`
}

type Offer struct {
	Seller    string  `json:"seller" mapstructure:"seller"`
	Mrp       int32   `json:"mrp" mapstructure:"mrp"`
	Price     int32   `json:"price" mapstructure:"price"`
	Rating    float64 `json:"rating" mapstructure:"rating"`
	Discount  int32   `json:"discount" mapstructure:"discount"`
	Delivery  string  `json:"delivery" mapstructure:"delivery"`
	Available bool    `json:"available" mapstructure:"available"`
	URL       string  `json:"url" mapstructure:"url"`
}

type Deal struct {
	Seller string `json:"seller" mapstructure:"seller"`
	Score  int32  `json:"score" mapstructure:"score"`
}

type SellerScore struct {
	Seller string `json:"seller" mapstructure:"seller"`
	Score  int32  `json:"score" mapstructure:"score"`
}

type ProductDetail struct {
	Product     *Product       `json:"product"`
	SmartScores []*SellerScore `json:"smart_scores"`
}

type ProductList struct {
	Items []*Product `json:"items"`
	Total int32      `json:"total"`
}

type Category struct {
	ID          string `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	ImageUrl    string `json:"image_url" mapstructure:"image_url"`
	Custom      bool   `json:"custom" mapstructure:"custom"`
}
