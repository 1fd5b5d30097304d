package account

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	catalogService "github.com/diyashah3011/SmartPriceMonitor/service/catalog"
)

const demoEmail = "user@monitor.com"

func itoa(n int) string { return strconv.Itoa(n) }

func testServer(t *testing.T) (*echo.Echo, *gorm.DB) {
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
	g := e.Group("/api")
	RegisterAccountRoutes(g, db)
	RegisterPreferenceRoutes(g, db)
	return e, db
}

func do(t *testing.T, e *echo.Echo, method, path, body, asUser string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if asUser != "" {
		req.Header.Set("X-User-Email", asUser)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return rec, decoded
}

func TestLogin(t *testing.T) {
	e, _ := testServer(t)

	rec, body := do(t, e, http.MethodPost, "/api/auth/login", `{"email":"user@monitor.com","password":"user123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %v", rec.Code, body)
	}
	if body["token"] == "" {
		t.Error("expected a session token")
	}

	rec, _ = do(t, e, http.MethodPost, "/api/auth/login", `{"email":"user@monitor.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", rec.Code)
	}
}

func TestSignup(t *testing.T) {
	e, db := testServer(t)

	rec, body := do(t, e, http.MethodPost, "/api/auth/signup", `{"name":"New","email":"new@example.com","password":"secret1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", rec.Code, body)
	}
	if _, err := repository.NewUserRepository(db).FindByEmail("new@example.com"); err != nil {
		t.Errorf("account not created: %v", err)
	}

	rec, _ = do(t, e, http.MethodPost, "/api/auth/signup", `{"name":"Dup","email":"new@example.com","password":"secret1"}`, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	rec, _ = do(t, e, http.MethodPost, "/api/auth/signup", `{"name":"Short","email":"s@example.com","password":"123"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short password status = %d, want 400", rec.Code)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	e, db := testServer(t)

	_, body := do(t, e, http.MethodPost, "/api/auth/login", `{"email":"user@monitor.com","password":"user123"}`, "")
	token := body["token"].(string)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	if _, err := repository.NewUserRepository(db).FindActiveToken(token); err == nil {
		t.Error("token should be revoked")
	}
}

func TestWishlist(t *testing.T) {
	e, _ := testServer(t)

	rec, _ := do(t, e, http.MethodPost, "/api/wishlist", `{"product_id":101}`, demoEmail)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("add status = %d, want 204", rec.Code)
	}
	// Adding the same product again stays idempotent.
	do(t, e, http.MethodPost, "/api/wishlist", `{"product_id":101}`, demoEmail)

	_, body := do(t, e, http.MethodGet, "/api/wishlist", "", demoEmail)
	if items := body["items"].([]interface{}); len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}

	rec, _ = do(t, e, http.MethodDelete, "/api/wishlist/101", "", demoEmail)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove status = %d, want 204", rec.Code)
	}
	_, body = do(t, e, http.MethodGet, "/api/wishlist", "", demoEmail)
	if items := body["items"].([]interface{}); len(items) != 0 {
		t.Errorf("items after remove = %d, want 0", len(items))
	}
}

func TestWishlist_RequiresUser(t *testing.T) {
	e, _ := testServer(t)
	rec, _ := do(t, e, http.MethodGet, "/api/wishlist", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCart_AddCheapestOffer(t *testing.T) {
	e, _ := testServer(t)

	// No seller given: the cheapest available offer is captured.
	rec, body := do(t, e, http.MethodPost, "/api/cart", `{"product_id":102}`, demoEmail)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", rec.Code, body)
	}
	if body["seller"] != "flipkart" || body["price"].(float64) != 92990 {
		t.Errorf("captured offer = %v/%v, want flipkart/92990", body["seller"], body["price"])
	}

	_, body = do(t, e, http.MethodGet, "/api/cart", "", demoEmail)
	if body["total"].(float64) != 92990 {
		t.Errorf("total = %v, want 92990", body["total"])
	}
}

func TestCart_ExplicitSellerAndQuantity(t *testing.T) {
	e, _ := testServer(t)

	rec, body := do(t, e, http.MethodPost, "/api/cart", `{"product_id":101,"seller":"amazon","quantity":3}`, demoEmail)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if body["price"].(float64) != 301 || body["quantity"].(float64) != 3 {
		t.Errorf("item = %v, want price 301 quantity 3", body)
	}

	_, body = do(t, e, http.MethodGet, "/api/cart", "", demoEmail)
	if body["total"].(float64) != 903 {
		t.Errorf("total = %v, want 903", body["total"])
	}
}

func TestCart_UnknownSeller(t *testing.T) {
	e, _ := testServer(t)
	rec, _ := do(t, e, http.MethodPost, "/api/cart", `{"product_id":101,"seller":"myntra"}`, demoEmail)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCart_FromWishlist(t *testing.T) {
	e, _ := testServer(t)

	do(t, e, http.MethodPost, "/api/wishlist", `{"product_id":101}`, demoEmail)
	do(t, e, http.MethodPost, "/api/wishlist", `{"product_id":102}`, demoEmail)

	rec, body := do(t, e, http.MethodPost, "/api/cart/from-wishlist", "", demoEmail)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["added"].(float64) != 2 {
		t.Errorf("added = %v, want 2", body["added"])
	}

	_, body = do(t, e, http.MethodGet, "/api/cart", "", demoEmail)
	if items := body["items"].([]interface{}); len(items) != 2 {
		t.Errorf("cart items = %d, want 2", len(items))
	}
}

func TestCart_ClearAndRemove(t *testing.T) {
	e, _ := testServer(t)

	_, item := do(t, e, http.MethodPost, "/api/cart", `{"product_id":101}`, demoEmail)
	itemID := int(item["id"].(float64))

	rec, _ := do(t, e, http.MethodDelete, "/api/cart/"+itoa(itemID), "", demoEmail)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove status = %d, want 204", rec.Code)
	}
	rec, _ = do(t, e, http.MethodDelete, "/api/cart/"+itoa(itemID), "", demoEmail)
	if rec.Code != http.StatusNotFound {
		t.Errorf("remove twice status = %d, want 404", rec.Code)
	}

	do(t, e, http.MethodPost, "/api/cart", `{"product_id":101}`, demoEmail)
	rec, _ = do(t, e, http.MethodDelete, "/api/cart", "", demoEmail)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d, want 204", rec.Code)
	}
	_, body := do(t, e, http.MethodGet, "/api/cart", "", demoEmail)
	if items := body["items"].([]interface{}); len(items) != 0 {
		t.Errorf("cart after clear = %d items, want 0", len(items))
	}
}

func TestAlerts(t *testing.T) {
	e, _ := testServer(t)

	rec, body := do(t, e, http.MethodPost, "/api/alerts", `{"product_id":101,"target_price":250}`, demoEmail)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}
	alertID := int(body["id"].(float64))

	rec, _ = do(t, e, http.MethodPost, "/api/alerts", `{"product_id":101,"target_price":0}`, demoEmail)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero target status = %d, want 400", rec.Code)
	}

	_, body = do(t, e, http.MethodGet, "/api/alerts", "", demoEmail)
	if list := body["alerts"].([]interface{}); len(list) != 1 {
		t.Errorf("alerts = %d, want 1", len(list))
	}

	rec, _ = do(t, e, http.MethodDelete, "/api/alerts/"+itoa(alertID), "", demoEmail)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
}

func TestPreferences(t *testing.T) {
	e, _ := testServer(t)

	// Defaults are empty until the user saves something.
	rec, body := do(t, e, http.MethodGet, "/api/preferences", "", demoEmail)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	if body["currency"] != "" {
		t.Errorf("currency = %v, want empty", body["currency"])
	}

	rec, body = do(t, e, http.MethodPut, "/api/preferences", `{"currency":"INR","default_sort":"smart-score","email_alerts":true}`, demoEmail)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, want 200: %v", rec.Code, body)
	}

	_, body = do(t, e, http.MethodGet, "/api/preferences", "", demoEmail)
	if body["default_sort"] != "smart-score" || body["email_alerts"] != true {
		t.Errorf("stored prefs = %v", body)
	}

	rec, _ = do(t, e, http.MethodPut, "/api/preferences", `{"default_sort":"bogus"}`, demoEmail)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad sort status = %d, want 400", rec.Code)
	}
	rec, _ = do(t, e, http.MethodPut, "/api/preferences", `{"unknown_key":1}`, demoEmail)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown key status = %d, want 400", rec.Code)
	}
}

func TestFeedback(t *testing.T) {
	e, db := testServer(t)

	rec, _ := do(t, e, http.MethodPost, "/api/feedback", `{"rating":5,"message":"great"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	rec, _ = do(t, e, http.MethodPost, "/api/feedback", `{"rating":0}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad rating status = %d, want 400", rec.Code)
	}

	list, err := repository.NewFeedbackRepository(db).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("stored feedback = %d, want 1", len(list))
	}
}
