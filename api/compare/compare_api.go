// Package compare exposes the public product browsing API: listing with
// facets and ranking, single-product scoring, categories and search
// suggestions. All routes here are on the auth skipper list.
package compare

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/api"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/config"
	"github.com/diyashah3011/SmartPriceMonitor/core/cache"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
	"github.com/diyashah3011/SmartPriceMonitor/search"
	catalogService "github.com/diyashah3011/SmartPriceMonitor/service/catalog"
)

const listCacheTTL = 60 // seconds

func init() {
	api.RegisterModule(RegisterCompareRoutes)
}

// productView is a catalog snapshot decorated with the derived comparison
// fields the listing page renders.
type productView struct {
	engine.Product
	BestDeal       engine.Deal `json:"best_deal"`
	CheapestSeller string      `json:"cheapest_seller,omitempty"`
	CheapestPrice  int         `json:"cheapest_price,omitempty"`
}

func newEngine() *engine.Engine {
	if config.AppConfig != nil {
		return engine.New(config.AppConfig.Sellers...)
	}
	return engine.New()
}

func decorate(eng *engine.Engine, products []engine.Product) []productView {
	views := make([]productView, len(products))
	for i := range products {
		p := products[i]
		v := productView{Product: p, BestDeal: eng.BestDeal(&p)}
		if seller, ok := eng.CheapestOffer(&p); ok {
			v.CheapestSeller = seller
			v.CheapestPrice = p.Offers[seller].Price
		}
		views[i] = v
	}
	return views
}

func loadCatalog(db *gorm.DB) ([]engine.Product, []engine.Category, error) {
	products, err := catalogService.CachedSnapshots(db)
	if err != nil {
		return nil, nil, err
	}
	rows, err := repository.NewCategoryRepository(db).FindAll()
	if err != nil {
		return nil, nil, err
	}
	return products, repository.EngineCategories(rows), nil
}

func RegisterCompareRoutes(g *echo.Group, db *gorm.DB) {
	c := cache.GetInstance()

	// GET /api/products – faceted listing, ranked
	g.GET("/products", func(ctx echo.Context) error {
		state := engine.FilterState{
			Category:   ctx.QueryParam("category"),
			Platform:   ctx.QueryParam("platform"),
			PriceRange: ctx.QueryParam("price"),
			Sort:       engine.SortOrder(ctx.QueryParam("sort")),
			Search:     ctx.QueryParam("search"),
		}
		cacheKeys := []interface{}{"products", state.Category, state.Platform, state.PriceRange, string(state.Sort), state.Search}
		if cached, ok := c.GetN(cacheKeys...); ok {
			return ctx.JSON(http.StatusOK, cached)
		}

		products, categories, err := loadCatalog(db)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		eng := newEngine()
		result := eng.Query(products, categories, state)
		body := echo.Map{
			"products": decorate(eng, result),
			"total":    len(result),
		}
		c.SetN(cacheKeys, body, listCacheTTL, []string{cache.TagCatalog})
		return ctx.JSON(http.StatusOK, body)
	})

	// GET /api/products/trending – the home page rail
	g.GET("/products/trending", func(ctx echo.Context) error {
		rows, err := repository.GetProductRepository(db).FindTrending()
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		products := make([]engine.Product, len(rows))
		for i := range rows {
			products[i] = rows[i].Snapshot()
		}
		eng := newEngine()
		return ctx.JSON(http.StatusOK, echo.Map{
			"products": decorate(eng, eng.Rank(products, engine.SortSmartScore)),
		})
	})

	// GET /api/products/:id – single product with per-seller smart scores
	g.GET("/products/:id", func(ctx echo.Context) error {
		id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		p, err := repository.GetProductRepository(db).FindByID(uint(id))
		if err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		snap := p.Snapshot()
		eng := newEngine()
		scores := make(map[string]int, len(snap.Offers))
		for seller := range snap.Offers {
			scores[seller] = eng.SmartScore(&snap, seller)
		}
		return ctx.JSON(http.StatusOK, echo.Map{
			"product":      snap,
			"smart_scores": scores,
			"best_deal":    eng.BestDeal(&snap),
		})
	})

	// GET /api/categories
	g.GET("/categories", func(ctx echo.Context) error {
		rows, err := repository.NewCategoryRepository(db).FindAll()
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, echo.Map{"categories": rows})
	})

	// GET /api/suggestions – static search box suggestions
	g.GET("/suggestions", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{"suggestions": catalogService.SearchSuggestions})
	})

	// GET /api/search?q= – full-text search via the search service, falling
	// back to the in-process matcher when no index is configured
	g.GET("/search", func(ctx echo.Context) error {
		q := ctx.QueryParam("q")
		if q == "" {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "q parameter is required"})
		}
		products, categories, err := loadCatalog(db)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		svc := search.NewService(newEngine())
		result, source, err := svc.Search(ctx.Request().Context(), products, categories, q)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, echo.Map{
			"products": decorate(newEngine(), result),
			"total":    len(result),
			"source":   source,
		})
	})
}
