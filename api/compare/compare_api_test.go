package compare

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/core/cache"
	catalogService "github.com/diyashah3011/SmartPriceMonitor/service/catalog"
)

func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := catalogService.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cache.GetInstance().InvalidateTag(cache.TagCatalog)

	e := echo.New()
	RegisterCompareRoutes(e.Group("/api"), db)
	return e
}

func doGET(t *testing.T, e *echo.Echo, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rec, body
}

func productCount(body map[string]interface{}) int {
	list, _ := body["products"].([]interface{})
	return len(list)
}

func TestListProducts_All(t *testing.T) {
	e := testServer(t)
	rec, body := doGET(t, e, "/api/products")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := productCount(body); got != 14 {
		t.Errorf("products = %d, want 14", got)
	}
}

func TestListProducts_CategoryFacet(t *testing.T) {
	e := testServer(t)
	_, body := doGET(t, e, "/api/products?category=automotive")
	if got := productCount(body); got != 2 {
		t.Errorf("automotive products = %d, want 2", got)
	}
}

func TestListProducts_PriceLowSort(t *testing.T) {
	e := testServer(t)
	_, body := doGET(t, e, "/api/products?sort=price-low")
	list := body["products"].([]interface{})
	first := list[0].(map[string]interface{})
	// Adjustable Mobile Stand at 99 is the cheapest seed product.
	if first["name"] != "Adjustable Mobile Stand" {
		t.Errorf("first = %v, want Adjustable Mobile Stand", first["name"])
	}
	if first["cheapest_price"].(float64) != 99 {
		t.Errorf("cheapest_price = %v, want 99", first["cheapest_price"])
	}
}

func TestListProducts_SearchFacet(t *testing.T) {
	e := testServer(t)
	_, body := doGET(t, e, "/api/products?search=car")
	// Whole-word match: dash cam and vacuum, not "Camera" substrings elsewhere.
	if got := productCount(body); got != 2 {
		t.Errorf("search=car products = %d, want 2", got)
	}
}

func TestGetProduct_SmartScores(t *testing.T) {
	e := testServer(t)
	rec, body := doGET(t, e, "/api/products/101")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	scores := body["smart_scores"].(map[string]interface{})
	if len(scores) != 2 {
		t.Errorf("smart_scores entries = %d, want 2", len(scores))
	}
	deal := body["best_deal"].(map[string]interface{})
	if deal["seller"] == "" {
		t.Error("best_deal seller should be set for an available product")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	e := testServer(t)
	rec, _ := doGET(t, e, "/api/products/9999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetProduct_BadID(t *testing.T) {
	e := testServer(t)
	rec, _ := doGET(t, e, "/api/products/abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTrending(t *testing.T) {
	e := testServer(t)
	rec, body := doGET(t, e, "/api/products/trending")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := productCount(body); got != 9 {
		t.Errorf("trending products = %d, want 9", got)
	}
}

func TestCategories(t *testing.T) {
	e := testServer(t)
	_, body := doGET(t, e, "/api/categories")
	list := body["categories"].([]interface{})
	if len(list) != 8 {
		t.Errorf("categories = %d, want 8", len(list))
	}
}

func TestSuggestions(t *testing.T) {
	e := testServer(t)
	rec, body := doGET(t, e, "/api/suggestions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if list := body["suggestions"].([]interface{}); len(list) == 0 {
		t.Error("suggestions should not be empty")
	}
}

func TestSearchEndpoint(t *testing.T) {
	e := testServer(t)
	rec, body := doGET(t, e, "/api/search?q=laptop")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["source"] != "engine" {
		t.Errorf("source = %v, want engine", body["source"])
	}
	// Broad type keyword matches the HP, Dell, ASUS and MacBook listings.
	if got := productCount(body); got != 4 {
		t.Errorf("laptop results = %d, want 4", got)
	}
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	e := testServer(t)
	rec, _ := doGET(t, e, "/api/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
