// Package admin exposes the catalog management API under /api/admin. Every
// mutation writes an activity log row and invalidates the catalog cache tag,
// so the public listing never serves stale data after an edit.
package admin

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/api"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/core/auth"
	"github.com/diyashah3011/SmartPriceMonitor/core/cache"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
	catalogService "github.com/diyashah3011/SmartPriceMonitor/service/catalog"
)

func init() {
	api.RegisterModule(RegisterAdminRoutes)
}

// offerInput is one seller's listing as submitted by the admin form. The
// discount is always derived server-side from MRP and price.
type offerInput struct {
	MRP       int     `json:"mrp"`
	Price     int     `json:"price"`
	Rating    float64 `json:"rating"`
	Delivery  string  `json:"delivery"`
	URL       string  `json:"url"`
	Available *bool   `json:"available"`
}

type productInput struct {
	Name        string                `json:"name"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Trending    bool                  `json:"trending"`
	Offers      map[string]offerInput `json:"platforms"`
}

func (in *productInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if len(in.Offers) == 0 {
		return fmt.Errorf("at least one seller offer is required")
	}
	for seller, o := range in.Offers {
		if o.Price < 0 || o.MRP < 0 {
			return fmt.Errorf("%s: price and mrp must not be negative", seller)
		}
		if o.Rating < 0 || o.Rating > 5 {
			return fmt.Errorf("%s: rating must be between 0 and 5", seller)
		}
	}
	return nil
}

func (in *productInput) offerMap() map[string]engine.Offer {
	offers := make(map[string]engine.Offer, len(in.Offers))
	for seller, o := range in.Offers {
		mrp := o.MRP
		if mrp < o.Price {
			mrp = o.Price
		}
		available := true
		if o.Available != nil {
			available = *o.Available
		}
		if o.Price <= 0 {
			available = false
		}
		delivery := o.Delivery
		if delivery == "" {
			delivery = "3 days"
		}
		offers[seller] = engine.Offer{
			MRP:       mrp,
			Price:     o.Price,
			Rating:    o.Rating,
			Discount:  catalogService.DeriveDiscount(mrp, o.Price),
			Delivery:  delivery,
			Available: available,
			URL:       o.URL,
		}
	}
	return offers
}

func RegisterAdminRoutes(g *echo.Group, db *gorm.DB) {
	grp := g.Group("/admin", auth.RequireAdmin)
	products := repository.GetProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	activity := repository.NewActivityLogRepository(db)
	users := repository.NewUserRepository(db)
	feedback := repository.NewFeedbackRepository(db)
	c := cache.GetInstance()

	logAction := func(action, productName string) {
		if err := activity.Log(action, productName); err != nil {
			log.Printf("Failed to record activity %q for %s: %v", action, productName, err)
		}
		c.InvalidateTag(cache.TagCatalog)
		catalogService.InvalidateSnapshotCache()
	}

	// POST /api/admin/products
	grp.POST("/products", func(ctx echo.Context) error {
		var in productInput
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := in.validate(); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if _, err := categories.FindByID(in.Category); err == repository.ErrNotFound {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
		} else if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		p := &entity.Product{
			Name:        strings.TrimSpace(in.Name),
			Category:    in.Category,
			Description: in.Description,
			Image:       in.Image,
			Trending:    in.Trending,
		}
		if err := p.SetOffers(in.offerMap()); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := products.Create(p); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logAction("Added", p.Name)
		return ctx.JSON(http.StatusCreated, p)
	})

	// PUT /api/admin/products/:id
	grp.PUT("/products/:id", func(ctx echo.Context) error {
		id, err := parseID(ctx)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		var in productInput
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := in.validate(); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		p, err := products.FindByID(id)
		if err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		p.Name = strings.TrimSpace(in.Name)
		p.Category = in.Category
		p.Description = in.Description
		p.Image = in.Image
		p.Trending = in.Trending
		if err := p.SetOffers(in.offerMap()); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := products.Update(p); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logAction("Updated", p.Name)
		return ctx.JSON(http.StatusOK, p)
	})

	// DELETE /api/admin/products/:id
	grp.DELETE("/products/:id", func(ctx echo.Context) error {
		id, err := parseID(ctx)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		p, err := products.FindByID(id)
		if err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := products.Delete(id); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logAction("Deleted", p.Name)
		return ctx.NoContent(http.StatusNoContent)
	})

	// PATCH /api/admin/products/:id/stock – toggle one seller's availability
	grp.PATCH("/products/:id/stock", func(ctx echo.Context) error {
		id, err := parseID(ctx)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		var in struct {
			Seller    string `json:"seller"`
			Available bool   `json:"available"`
		}
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Seller == "" {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "seller is required"})
		}
		p, err := products.SetAvailability(id, in.Seller, in.Available)
		if err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "product or seller not found"})
		}
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logAction("Stock toggled", p.Name)
		return ctx.JSON(http.StatusOK, p)
	})

	// POST /api/admin/categories
	grp.POST("/categories", func(ctx echo.Context) error {
		var in entity.Category
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name == "" {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}
		if in.ID == "" {
			in.ID = slugify(in.Name)
		}
		in.Custom = true
		if err := categories.Upsert(&in); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logAction("Category added", in.Name)
		return ctx.JSON(http.StatusCreated, in)
	})

	// DELETE /api/admin/categories/:id – custom categories only
	grp.DELETE("/categories/:id", func(ctx echo.Context) error {
		id := ctx.Param("id")
		err := categories.Delete(id)
		if err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "category not found or not deletable"})
		}
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logAction("Category deleted", id)
		return ctx.NoContent(http.StatusNoContent)
	})

	// GET /api/admin/activity
	grp.GET("/activity", func(ctx echo.Context) error {
		limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
		rows, err := activity.Recent(limit)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, echo.Map{"activity": rows})
	})

	// GET /api/admin/stats
	grp.GET("/stats", func(ctx echo.Context) error {
		stats, err := catalogService.ComputeStats(db)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, stats)
	})

	// GET /api/admin/customers
	grp.GET("/customers", func(ctx echo.Context) error {
		list, err := users.List()
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, echo.Map{"customers": list})
	})

	// DELETE /api/admin/customers/:email
	grp.DELETE("/customers/:email", func(ctx echo.Context) error {
		email := strings.ToLower(strings.TrimSpace(ctx.Param("email")))
		err := users.DeleteByEmail(email)
		if err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logAction("Customer removed", email)
		return ctx.JSON(http.StatusOK, echo.Map{"status": "deleted"})
	})

	// GET /api/admin/feedback
	grp.GET("/feedback", func(ctx echo.Context) error {
		list, err := feedback.List()
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, echo.Map{"feedback": list})
	})

	// POST /api/admin/import – CSV catalog import
	grp.POST("/import", func(ctx echo.Context) error {
		file, err := ctx.FormFile("file")
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "file form field is required"})
		}
		src, err := file.Open()
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		defer src.Close()

		res, err := catalogService.ImportProducts(db, src, catalogService.ImportOptions{
			DefaultCategory: ctx.FormValue("default_category"),
		})
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logAction("Imported", fmt.Sprintf("%d rows", res.TotalRows))
		return ctx.JSON(http.StatusOK, res)
	})
}

func parseID(ctx echo.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid product id")
	}
	return uint(id), nil
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
}
