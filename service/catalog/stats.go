package catalog

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalProducts  int64            `json:"total_products"`
	Trending       int64            `json:"trending"`
	Categories     int64            `json:"categories"`
	Customers      int64            `json:"customers"`
	ActiveAlerts   int64            `json:"active_alerts"`
	ByCategory     map[string]int64 `json:"by_category"`
	AveragePriceBy map[string]int   `json:"average_cheapest_price_by_category,omitempty"`
}

// ComputeStats assembles the dashboard counters in one pass over the catalog.
func ComputeStats(db *gorm.DB) (*Stats, error) {
	products := repository.GetProductRepository(db)

	s := &Stats{}
	var err error
	if s.TotalProducts, err = products.Count(); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if s.Trending, err = products.CountTrending(); err != nil {
		return nil, fmt.Errorf("count trending: %w", err)
	}
	if s.ByCategory, err = products.CountByCategory(); err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	if err := db.Model(&entity.Category{}).Count(&s.Categories).Error; err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if err := db.Model(&entity.User{}).Where("role = ?", entity.RoleUser).Count(&s.Customers).Error; err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if err := db.Model(&entity.PriceAlert{}).Where("active = ?", true).Count(&s.ActiveAlerts).Error; err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}
	return s, nil
}
