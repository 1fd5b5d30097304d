package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/core/registry"
)

func TestRegistry_Register_Apply(t *testing.T) {
	t.Cleanup(func() { registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes) })

	RegisterGET("/test/registry/check", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	e := echo.New()
	ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/test/registry/check", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRegistry_Modules_Apply(t *testing.T) {
	t.Cleanup(func() { registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI) })

	called := false
	RegisterModule(func(g *echo.Group, db *gorm.DB) {
		called = true
		g.GET("/module/check", func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
	})

	e := echo.New()
	ApplyModules(e.Group("/api"), nil)
	if !called {
		t.Fatal("module func not invoked")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/module/check", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}
