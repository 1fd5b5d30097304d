// Package account exposes the shopper-facing API: simulated sign-in with
// bearer session tokens, wishlist, cart, price alerts and feedback.
package account

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/api"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/core/auth"
)

func init() {
	api.RegisterModule(RegisterAccountRoutes)
}

// currentUser resolves the acting user. Token auth puts the user on the
// context; under the basic/key operator modes the X-User-Email header selects
// the account instead.
func currentUser(ctx echo.Context, users *repository.UserRepository) (*entity.User, error) {
	if u := auth.CurrentUser(ctx); u != nil {
		return u, nil
	}
	if email := ctx.Request().Header.Get("X-User-Email"); email != "" {
		u, err := users.FindByEmail(email)
		if err == repository.ErrNotFound {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
		}
		return u, err
	}
	return nil, echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
}

func RegisterAccountRoutes(g *echo.Group, db *gorm.DB) {
	users := repository.NewUserRepository(db)
	products := repository.GetProductRepository(db)
	alerts := repository.NewAlertRepository(db)
	feedback := repository.NewFeedbackRepository(db)

	// POST /api/auth/login
	g.POST("/auth/login", func(ctx echo.Context) error {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		u, err := users.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
		if err == repository.ErrNotFound || (err == nil && u.Password != in.Password) {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		session, err := users.CreateSession(u.ID)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, echo.Map{
			"token":      session.Token,
			"expires_at": session.ExpiresAt,
			"user":       u,
		})
	})

	// POST /api/auth/signup
	g.POST("/auth/signup", func(ctx echo.Context) error {
		var in struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		in.Email = strings.ToLower(strings.TrimSpace(in.Email))
		if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and a password of 6+ characters are required"})
		}
		if _, err := users.FindByEmail(in.Email); err == nil {
			return ctx.JSON(http.StatusConflict, echo.Map{"error": "account already exists"})
		} else if err != repository.ErrNotFound {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		u := &entity.User{Name: in.Name, Email: in.Email, Password: in.Password, Role: entity.RoleUser}
		if err := users.Create(u); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		session, err := users.CreateSession(u.ID)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusCreated, echo.Map{
			"token": session.Token,
			"user":  u,
		})
	})

	// POST /api/auth/logout – revokes the presented token
	g.POST("/auth/logout", func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "bearer token required"})
		}
		if err := users.RevokeSession(token); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.NoContent(http.StatusNoContent)
	})

	// GET /api/wishlist
	g.GET("/wishlist", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		items, err := users.Wishlist(u.ID)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, echo.Map{"items": items})
	})

	// POST /api/wishlist – body {"product_id": N}; adding twice is a no-op
	g.POST("/wishlist", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		var in struct {
			ProductID uint `json:"product_id"`
		}
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if _, err := products.FindByID(in.ProductID); err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		} else if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := users.AddToWishlist(u.ID, in.ProductID); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.NoContent(http.StatusNoContent)
	})

	// DELETE /api/wishlist/:productId
	g.DELETE("/wishlist/:productId", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		pid, perr := parseUint(ctx.Param("productId"))
		if perr != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := users.RemoveFromWishlist(u.ID, pid); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.NoContent(http.StatusNoContent)
	})

	// GET /api/cart
	g.GET("/cart", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		items, err := users.Cart(u.ID)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		total := 0
		for _, it := range items {
			total += it.Price * it.Quantity
		}
		return ctx.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
	})

	// POST /api/cart – body {"product_id": N, "seller": "amazon", "quantity": 1}
	g.POST("/cart", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		var in struct {
			ProductID uint   `json:"product_id"`
			Seller    string `json:"seller"`
			Quantity  int    `json:"quantity"`
		}
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item, httpErr := buildCartItem(products, u.ID, in.ProductID, in.Seller, in.Quantity)
		if httpErr != nil {
			return httpErr
		}
		if err := users.AddToCart(item); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusCreated, item)
	})

	// POST /api/cart/from-wishlist – moves every wishlisted product into the
	// cart at its current cheapest available offer
	g.POST("/cart/from-wishlist", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		items, err := users.Wishlist(u.ID)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		added, skipped := 0, 0
		for _, w := range items {
			item, httpErr := buildCartItem(products, u.ID, w.ProductID, "", 1)
			if httpErr != nil {
				skipped++
				continue
			}
			if err := users.AddToCart(item); err != nil {
				return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			added++
		}
		return ctx.JSON(http.StatusOK, echo.Map{"added": added, "skipped": skipped})
	})

	// DELETE /api/cart/:itemId
	g.DELETE("/cart/:itemId", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		id, perr := parseUint(ctx.Param("itemId"))
		if perr != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		if err := users.RemoveFromCart(u.ID, id); err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
		} else if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.NoContent(http.StatusNoContent)
	})

	// DELETE /api/cart
	g.DELETE("/cart", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		if err := users.ClearCart(u.ID); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.NoContent(http.StatusNoContent)
	})

	// GET /api/alerts
	g.GET("/alerts", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		list, err := alerts.ListByUser(u.ID)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, echo.Map{"alerts": list})
	})

	// POST /api/alerts – body {"product_id": N, "target_price": N}
	g.POST("/alerts", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		var in struct {
			ProductID   uint `json:"product_id"`
			TargetPrice int  `json:"target_price"`
		}
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.TargetPrice <= 0 {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "target_price must be positive"})
		}
		if _, err := products.FindByID(in.ProductID); err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		} else if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		a := &entity.PriceAlert{UserID: u.ID, ProductID: in.ProductID, TargetPrice: in.TargetPrice}
		if err := alerts.Create(a); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusCreated, a)
	})

	// DELETE /api/alerts/:id
	g.DELETE("/alerts/:id", func(ctx echo.Context) error {
		u, err := currentUser(ctx, users)
		if err != nil {
			return err
		}
		id, perr := parseUint(ctx.Param("id"))
		if perr != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid alert id"})
		}
		if err := alerts.Delete(u.ID, id); err == repository.ErrNotFound {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": "alert not found"})
		} else if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.NoContent(http.StatusNoContent)
	})

	// POST /api/feedback – anonymous star-rating widget, no sign-in needed
	g.POST("/feedback", func(ctx echo.Context) error {
		var in entity.Feedback
		if err := ctx.Bind(&in); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Rating < 1 || in.Rating > 5 {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
		}
		in.ID = 0
		if err := feedback.Create(&in); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return ctx.JSON(http.StatusCreated, in)
	})
}

// buildCartItem snapshots the chosen offer's price into the cart row. An empty
// seller selects the cheapest available offer.
func buildCartItem(products *repository.ProductRepository, userID, productID uint, seller string, qty int) (*entity.CartItem, *echo.HTTPError) {
	p, err := products.FindByID(productID)
	if err == repository.ErrNotFound {
		return nil, echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	offers := p.OfferMap()

	if seller == "" {
		snap := p.Snapshot()
		s, ok := defaultEngine().CheapestOffer(&snap)
		if !ok {
			return nil, echo.NewHTTPError(http.StatusConflict, "no available offer")
		}
		seller = s
	}
	offer, ok := offers[seller]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unknown seller for this product")
	}
	if !offer.Available {
		return nil, echo.NewHTTPError(http.StatusConflict, "offer is out of stock")
	}
	if qty <= 0 {
		qty = 1
	}
	return &entity.CartItem{
		UserID:    userID,
		ProductID: productID,
		Seller:    seller,
		Price:     offer.Price,
		Quantity:  qty,
	}, nil
}
