package account

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/api"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

func init() {
	api.RegisterModule(RegisterPreferenceRoutes)
}

// Preferences is the per-user settings blob stored on the account row.
// Unknown keys in the request are rejected rather than silently dropped.
type Preferences struct {
	Currency    string `json:"currency" mapstructure:"currency"`
	Theme       string `json:"theme" mapstructure:"theme"`
	EmailAlerts bool   `json:"email_alerts" mapstructure:"email_alerts"`
	DefaultSort string `json:"default_sort" mapstructure:"default_sort"`
}

func (p *Preferences) validate() error {
	switch engine.SortOrder(p.DefaultSort) {
	case "", engine.SortRelevance, engine.SortPriceLow, engine.SortPriceHigh, engine.SortDelivery, engine.SortSmartScore:
		return nil
	}
	return echo.NewHTTPError(http.StatusBadRequest, "unknown default_sort")
}

func RegisterPreferenceRoutes(g *echo.Group, db *gorm.DB) {
	users := repository.NewUserRepository(db)

	// GET /api/preferences
	g.GET("/preferences", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		prefs := Preferences{}
		if len(u.Preferences) > 0 {
			if err := json.Unmarshal(u.Preferences, &prefs); err != nil {
				return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
		}
		return ctx.JSON(http.StatusOK, prefs)
	})

	// PUT /api/preferences – partial updates merge over the stored blob
	g.PUT("/preferences", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		var raw map[string]interface{}
		if err := ctx.Bind(&raw); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		prefs := Preferences{}
		if len(u.Preferences) > 0 {
			_ = json.Unmarshal(u.Preferences, &prefs)
		}

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &prefs,
			ErrorUnused: true,
		})
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := dec.Decode(raw); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := prefs.validate(); err != nil {
			return err
		}

		blob, err := json.Marshal(prefs)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		u.Preferences = blob
		if err := users.Update(u); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, prefs)
	})
}
