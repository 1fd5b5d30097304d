package entity

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

// Product represents catalog_product table. Per-seller offers are stored as
// a JSON document keyed by seller id, mirroring the original catalog shape.
type Product struct {
	ID          uint           `gorm:"column:product_id;primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category    string         `gorm:"column:category;type:varchar(64);index" json:"category"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Image       string         `gorm:"column:image;type:text" json:"image"`
	Trending    bool           `gorm:"column:trending;not null;default:false" json:"trending"`
	Offers      datatypes.JSON `gorm:"column:offers" json:"platforms"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product"
}

// OfferMap decodes the offers column. A malformed or empty document decodes
// to an empty map, never an error. Pricing treats that as "no offers".
func (p *Product) OfferMap() map[string]engine.Offer {
	out := make(map[string]engine.Offer)
	if len(p.Offers) == 0 {
		return out
	}
	if err := json.Unmarshal(p.Offers, &out); err != nil {
		return make(map[string]engine.Offer)
	}
	return out
}

// SetOffers encodes the offer map into the offers column.
func (p *Product) SetOffers(offers map[string]engine.Offer) error {
	raw, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	p.Offers = datatypes.JSON(raw)
	return nil
}

// Snapshot converts the row into the engine's read-only product view.
func (p *Product) Snapshot() engine.Product {
	return engine.Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Trending:    p.Trending,
		Offers:      p.OfferMap(),
	}
}
