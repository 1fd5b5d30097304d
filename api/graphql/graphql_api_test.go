package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	gqlregistry "github.com/diyashah3011/SmartPriceMonitor/graphql/registry"
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

	e := echo.New()
	RegisterGraphQLRoutes(e, db)
	return e
}

func query(t *testing.T, e *echo.Echo, q string) map[string]interface{} {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"query": q})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data   map[string]interface{} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("graphql errors: %v", resp.Errors)
	}
	return resp.Data
}

func TestQuery_Products(t *testing.T) {
	e := testServer(t)
	data := query(t, e, `{ products { total items { id name bestDeal { seller score } } } }`)
	list := data["products"].(map[string]interface{})
	if list["total"].(float64) != 14 {
		t.Errorf("total = %v, want 14", list["total"])
	}
}

func TestQuery_ProductsFiltered(t *testing.T) {
	e := testServer(t)
	data := query(t, e, `{ products(category: "automotive", sort: "price-low") { total items { name cheapestPrice } } }`)
	list := data["products"].(map[string]interface{})
	if list["total"].(float64) != 2 {
		t.Fatalf("total = %v, want 2", list["total"])
	}
	items := list["items"].([]interface{})
	first := items[0].(map[string]interface{})
	if first["cheapestPrice"].(float64) != 1299 {
		t.Errorf("first cheapestPrice = %v, want 1299 (car vacuum)", first["cheapestPrice"])
	}
}

func TestQuery_ProductDetail(t *testing.T) {
	e := testServer(t)
	data := query(t, e, `{ product(id: 101) { product { name offers { seller price } } smartScores { seller score } } }`)
	detail := data["product"].(map[string]interface{})
	p := detail["product"].(map[string]interface{})
	if p["name"] != "Quace Panda Silicon Night Lamp" {
		t.Errorf("name = %v", p["name"])
	}
	if scores := detail["smartScores"].([]interface{}); len(scores) != 2 {
		t.Errorf("smartScores = %d, want 2", len(scores))
	}
}

func TestQuery_ProductDetail_Missing(t *testing.T) {
	e := testServer(t)
	data := query(t, e, `{ product(id: 9999) { product { name } } }`)
	if data["product"] != nil {
		t.Errorf("product = %v, want null", data["product"])
	}
}

func TestQuery_Categories(t *testing.T) {
	e := testServer(t)
	data := query(t, e, `{ categories { id name } }`)
	if list := data["categories"].([]interface{}); len(list) != 8 {
		t.Errorf("categories = %d, want 8", len(list))
	}
}

func TestQuery_Search(t *testing.T) {
	e := testServer(t)
	data := query(t, e, `{ search(query: "laptop") { total } }`)
	list := data["search"].(map[string]interface{})
	if list["total"].(float64) != 4 {
		t.Errorf("total = %v, want 4", list["total"])
	}
}

func TestQuery_BestDeal(t *testing.T) {
	e := testServer(t)
	data := query(t, e, `{ bestDeal(id: 101) { seller score } }`)
	deal := data["bestDeal"].(map[string]interface{})
	if deal["seller"] != "amazon" {
		t.Errorf("seller = %v, want amazon (cheaper, faster, better rated)", deal["seller"])
	}
}

func TestQuery_Extension(t *testing.T) {
	gqlregistry.Register("pingTest", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]string{"pong": "ok"}, nil
	})
	defer gqlregistry.Unregister("pingTest")

	e := testServer(t)
	data := query(t, e, `{ extension(name: "pingTest") }`)
	raw, _ := data["extension"].(string)
	if !strings.Contains(raw, "pong") {
		t.Errorf("extension = %q, want pong payload", raw)
	}
}

func TestPlayground(t *testing.T) {
	e := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/playground", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GraphQL Playground") {
		t.Error("playground HTML missing")
	}
}
