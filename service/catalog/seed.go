// Package catalog implements catalog-level services: first-run seeding, CSV
// import and admin statistics.
package catalog

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

// SeedVersion is bumped whenever the default catalog changes; Seed re-syncs
// missing defaults exactly once per version.
const SeedVersion = "v4"

const seedFlag = "defaults_synced"

type seedOffer struct {
	seller   string
	mrp      int
	price    int
	rating   float64
	discount int
	delivery string
	url      string
}

type seedProduct struct {
	id          uint
	name        string
	category    string
	description string
	image       string
	trending    bool
	offers      []seedOffer
}

func defaultCategories() []entity.Category {
	return []entity.Category{
		{ID: "electronics", Name: "Electronics", Description: "Laptops, smartphones, cameras, and the latest tech gadgets with the deepest discounts.", ImageURL: "https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&w=600&q=80"},
		{ID: "fashion", Name: "Fashion", Description: "Premium brands, designer wear, and seasonal trends at outlet prices.", ImageURL: "https://images.unsplash.com/photo-1483985988355-763728e1935b?auto=format&fit=crop&w=600&q=80"},
		{ID: "home", Name: "Home & Living", Description: "Smart home appliances, luxury furniture, and gardening tools for your perfect home.", ImageURL: "https://images.unsplash.com/photo-1484101403633-562f891dc89a?auto=format&fit=crop&w=600&q=80"},
		{ID: "grocery", Name: "Groceries", Description: "Stock up on pantry essentials and fresh produce with member-exclusive savings.", ImageURL: "https://images.unsplash.com/photo-1542838132-92c53300491e?auto=format&fit=crop&w=600&q=80"},
		{ID: "beauty", Name: "Beauty & Care", Description: "Skincare, cosmetics, and wellness products from top global brands.", ImageURL: "https://images.unsplash.com/photo-1522335789203-aabd1fc54bc9?auto=format&fit=crop&w=600&q=80"},
		{ID: "automotive", Name: "Automotive", Description: "Car parts, accessories, and maintenance tools for enthusiasts and daily drivers.", ImageURL: "https://images.unsplash.com/photo-1492144534655-ae79c964c9d7?auto=format&fit=crop&w=600&q=80"},
		{ID: "toys", Name: "Toys & Games", Description: "The latest board games, collectibles, and educational toys for all ages.", ImageURL: "https://images.unsplash.com/photo-1532330393533-443990a51d10?auto=format&fit=crop&w=600&q=80"},
		{ID: "fitness", Name: "Sports & Fitness", Description: "Equipment, apparel, and nutrition to help you hit your fitness goals.", ImageURL: "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?auto=format&fit=crop&w=600&q=80"},
	}
}

func defaultProducts() []seedProduct {
	amazonURL := "https://www.amazon.in"
	flipkartURL := "https://www.flipkart.com"
	return []seedProduct{
		{101, "Quace Panda Silicon Night Lamp", "home",
			"Soft silicon panda nursery light with 7-color touch sensor. Perfect for kids' rooms, portable and USB rechargeable with long battery life.",
			"https://images.unsplash.com/photo-1534073828943-f801091bb18c?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 599, 301, 4.5, 50, "1 day", amazonURL},
				{"flipkart", 599, 399, 4.2, 33, "2 days", flipkartURL},
			}},
		{102, "Apple MacBook Air (M2 Chip)", "electronics",
			"Strikingly thin design, 13.6-inch Liquid Retina display, 8GB RAM, 256GB SSD storage. Up to 18 hours of battery life.",
			"https://images.unsplash.com/photo-1611186871348-b1ce696e52c9?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 114900, 94990, 4.8, 17, "1 day", amazonURL},
				{"flipkart", 114900, 92990, 4.7, 19, "2 days", flipkartURL},
			}},
		{103, "Nike Air Force 1 '07", "fashion",
			"The radiance lives on in the Nike Air Force 1 '07, the b-ball OG that puts a fresh spin on what you know best: stitched overlays, bold colors and the perfect amount of flash.",
			"https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 8195, 7495, 4.6, 8, "3 days", amazonURL},
				{"flipkart", 8195, 7295, 4.4, 11, "2 days", flipkartURL},
			}},
		{104, "Premium California Almonds - 1kg", "grocery",
			"High-quality, crunchy and nutritious California almonds. Vacuum packed for freshness and rich in protein and Vitamin E.",
			"https://images.unsplash.com/photo-1508840595368-1bd83dca6aae?auto=format&fit=crop&w=600&q=80", false,
			[]seedOffer{
				{"amazon", 1200, 899, 4.5, 25, "1 day", amazonURL},
				{"flipkart", 1200, 849, 4.3, 29, "2 days", flipkartURL},
			}},
		{105, "Fast Charging USB-C Cable", "electronics",
			"Durable braided nylon USB Type-C cable, supports fast charging and data transfer.",
			"https://images.unsplash.com/photo-1544866671-801262d189c4?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 499, 149, 4.4, 70, "1 day", amazonURL},
				{"flipkart", 499, 129, 4.3, 74, "3 days", flipkartURL},
			}},
		{106, "Adjustable Mobile Stand", "electronics",
			"Foldable and adjustable desktop phone holder, anti-slip design.",
			"https://images.unsplash.com/photo-1586953208448-b95a79798f07?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 399, 99, 4.2, 75, "2 days", amazonURL},
				{"flipkart", 399, 119, 4.1, 70, "4 days", flipkartURL},
			}},
		{107, "Basic Wired Earphones", "electronics",
			"Comfortable in-ear wired earphones with deep bass and microphone.",
			"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 599, 199, 4.0, 66, "1 day", amazonURL},
				{"flipkart", 599, 189, 3.9, 68, "3 days", flipkartURL},
			}},
		{108, "Apple iPhone 15 Pro Max (256 GB) - Natural Titanium", "electronics",
			"iPhone 15 Pro Max. Forged in titanium. Features the groundbreaking A17 Pro chip, a customizable Action button, and the most powerful iPhone camera system ever.",
			"https://images.unsplash.com/photo-1695048133142-1a20484d2569?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 159900, 148900, 4.8, 7, "1 day", amazonURL},
				{"flipkart", 159900, 149900, 4.7, 6, "2 days", flipkartURL},
			}},
		{109, "HP Laptop 15s, 12th Gen Intel Core i3", "electronics",
			"Thin and light laptop with 8GB DDR4 RAM, 512GB SSD, 15.6-inch FHD display, and dual speakers. Perfect for students and office work.",
			"https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?auto=format&fit=crop&w=600&q=80", false,
			[]seedOffer{
				{"amazon", 56000, 38990, 4.3, 30, "2 days", amazonURL},
				{"flipkart", 56000, 37990, 4.2, 32, "3 days", flipkartURL},
			}},
		{110, "Dell Inspiron 3520 Laptop", "electronics",
			"Intel Core i5-1235U processor, 16GB RAM, 512GB SSD, 15.6-inch FHD 120Hz display. Sleek design with narrow borders.",
			"https://images.unsplash.com/photo-1593642632823-8f785bf67e45?auto=format&fit=crop&w=600&q=80", false,
			[]seedOffer{
				{"amazon", 72000, 54990, 4.5, 24, "1 day", amazonURL},
				{"flipkart", 72000, 55490, 4.4, 23, "2 days", flipkartURL},
			}},
		{111, "ASUS Vivobook 16X", "electronics",
			"AMD Ryzen 7 5800H, 16GB RAM, 512GB SSD, 16-inch WUXGA display. High performance for creators and gamers.",
			"https://images.unsplash.com/photo-1496181133206-80ce9b88a853?auto=format&fit=crop&w=600&q=80", false,
			[]seedOffer{
				{"amazon", 85000, 62990, 4.6, 26, "2 days", amazonURL},
				{"flipkart", 85000, 61990, 4.5, 27, "3 days", flipkartURL},
			}},
		{112, "Boat Speaker", "electronics",
			"Premium portable bluetooth speaker with immersive sound, deep bass, and 12 hours of playtime. IPX7 water resistant.",
			"https://images.unsplash.com/photo-1608156639585-b3a032ef9689?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 14990, 4999, 4.6, 67, "1 day", amazonURL},
				{"flipkart", 14990, 4999, 4.5, 67, "2 days", flipkartURL},
			}},
		{113, "Car Dashboard Camera (4K)", "automotive",
			"Ultra HD 4K dash cam with night vision, 170 degree wide angle, G-sensor, and loop recording. Essential for car safety and evidence.",
			"https://images.unsplash.com/photo-1549841176-71f3b0e11ecf?auto=format&fit=crop&w=600&q=80", true,
			[]seedOffer{
				{"amazon", 8999, 4499, 4.4, 50, "1 day", amazonURL},
				{"flipkart", 8999, 4699, 4.3, 48, "2 days", flipkartURL},
			}},
		{114, "Portable Car Vacuum Cleaner", "automotive",
			"High power cordless car vacuum cleaner with HEPA filter and multiple attachments for deep cleaning car interiors.",
			"https://images.unsplash.com/photo-1599256629751-2df2e6d22731?auto=format&fit=crop&w=600&q=80", false,
			[]seedOffer{
				{"amazon", 2999, 1299, 4.2, 57, "1 day", amazonURL},
				{"flipkart", 2999, 1399, 4.1, 53, "2 days", flipkartURL},
			}},
	}
}

// SearchSuggestions is the static suggestion list served to the search box.
var SearchSuggestions = []string{
	"iPhone 15", "Samsung Galaxy", "MacBook", "Boat Speaker", "Nike shoes", "Levi's jeans",
	"Instant Pot", "Dyson vacuum", "Protein powder", "Yoga mat", "Car Camera",
}

func (s seedProduct) toEntity() (*entity.Product, error) {
	offers := make(map[string]engine.Offer, len(s.offers))
	for _, o := range s.offers {
		offers[o.seller] = engine.Offer{
			MRP:       o.mrp,
			Price:     o.price,
			Rating:    o.rating,
			Discount:  o.discount,
			Delivery:  o.delivery,
			Available: true,
			URL:       o.url,
		}
	}
	p := &entity.Product{
		ID:          s.id,
		Name:        s.name,
		Category:    s.category,
		Description: s.description,
		Image:       s.image,
		Trending:    s.trending,
	}
	if err := p.SetOffers(offers); err != nil {
		return nil, err
	}
	return p, nil
}

// Seed installs the default catalog, categories and accounts. It is
// idempotent: the product sync runs once per SeedVersion (tracked in
// app_flag) and the categories/accounts are upserted only when missing.
// The system admin account is always restored if someone deleted it.
func Seed(db *gorm.DB) error {
	flags := repository.NewFlagRepository(db)
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	users := repository.NewUserRepository(db)

	for _, c := range defaultCategories() {
		if _, err := categories.FindByID(c.ID); err == repository.ErrNotFound {
			cat := c
			if err := categories.Upsert(&cat); err != nil {
				return fmt.Errorf("seed category %s: %w", c.ID, err)
			}
		} else if err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}

	synced, err := flags.Get(seedFlag)
	if err != nil {
		return fmt.Errorf("read seed flag: %w", err)
	}
	if synced != SeedVersion {
		added := 0
		for _, sp := range defaultProducts() {
			if _, err := products.FindByID(sp.id); err == nil {
				continue
			} else if err != repository.ErrNotFound {
				return fmt.Errorf("seed product %d: %w", sp.id, err)
			}
			p, err := sp.toEntity()
			if err != nil {
				return fmt.Errorf("seed product %d: %w", sp.id, err)
			}
			if err := products.Create(p); err != nil {
				return fmt.Errorf("seed product %d: %w", sp.id, err)
			}
			added++
		}
		if err := flags.Set(seedFlag, SeedVersion); err != nil {
			return fmt.Errorf("write seed flag: %w", err)
		}
		log.Printf("Catalog seeded: %d default products added (version %s)", added, SeedVersion)
	}

	return seedAccounts(users)
}

// seedAccounts installs the demo user once and keeps the system admin
// present at all times.
func seedAccounts(users *repository.UserRepository) error {
	if _, err := users.FindByEmail("user@monitor.com"); err == repository.ErrNotFound {
		demo := &entity.User{
			Name:     "Demo User",
			Email:    "user@monitor.com",
			Password: "user123",
			Role:     entity.RoleUser,
		}
		if err := users.Create(demo); err != nil {
			return fmt.Errorf("seed demo user: %w", err)
		}
	} else if err != nil {
		return err
	}

	if _, err := users.FindByEmail("admin@monitor.com"); err == repository.ErrNotFound {
		admin := &entity.User{
			Name:          "System Administrator",
			Email:         "admin@monitor.com",
			Password:      "smartpricemonitor12345",
			Role:          entity.RoleAdmin,
			IsSystemAdmin: true,
		}
		if err := users.Create(admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	} else if err != nil {
		return err
	}
	return nil
}
