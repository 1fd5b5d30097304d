package repository

import (
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
)

// AutoMigrate creates or updates every catalog table. Run once at startup
// before seeding.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Product{},
		&entity.Category{},
		&entity.User{},
		&entity.SessionToken{},
		&entity.WishlistItem{},
		&entity.CartItem{},
		&entity.ActivityLog{},
		&entity.PriceAlert{},
		&entity.Feedback{},
		&entity.AppFlag{},
	)
}
