package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	customersvc "storefront/internal/service/customer"
)

// SessionHeader carries the client's cart session id.
const SessionHeader = "X-Cart-Session"

type catalogService interface {
	List(ctx context.Context, f catalog.Filter) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type couponLister interface {
	All() []domain.Coupon
}

type cartSessions interface {
	Get(ctx context.Context, session string) (*cart.Store, error)
}

type customerService interface {
	Register(ctx context.Context, in customersvc.RegisterInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, customersvc.Session, error)
	Refresh(ctx context.Context, refreshToken string) (customersvc.Session, error)
	Logout(ctx context.Context, accessToken string) error
	Authenticate(ctx context.Context, token string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, id string, in customersvc.ProfileInput) (*domain.Customer, error)
}

type checkoutService interface {
	HandOff(ctx context.Context, c domain.Customer, store checkoutsvc.Cart) (checkoutsvc.Order, error)
}

// Deps groups the services the router dispatches to.
type Deps struct {
	Catalog   catalogService
	Coupons   couponLister
	Carts     cartSessions
	Customers customerService
	Checkout  checkoutService

	// Metrics serves /metrics when set.
	Metrics     http.Handler
	HTTPMetrics *metrics.HTTPMetrics
	CORSOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.Catalog == nil:
		return errors.New("httpserver: catalog service required")
	case d.Coupons == nil:
		return errors.New("httpserver: coupon catalog required")
	case d.Carts == nil:
		return errors.New("httpserver: cart sessions required")
	case d.Customers == nil:
		return errors.New("httpserver: customer service required")
	case d.Checkout == nil:
		return errors.New("httpserver: checkout service required")
	}
	return nil
}

type handlers struct {
	deps   Deps
	logger zerolog.Logger
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, db Pinger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger, deps.HTTPMetrics), recovery(logger))
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	h := &handlers{deps: deps, logger: logger}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	router.POST("/sessions", h.newSession)

	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/categories", h.listCategories)
	router.GET("/coupons", h.listCoupons)

	carts := router.Group("/cart", h.cartSession)
	carts.GET("", h.getCart)
	carts.DELETE("", h.clearCart)
	carts.POST("/items", h.addItem)
	carts.PATCH("/items", h.updateQuantity)
	carts.DELETE("/items", h.removeItem)
	carts.POST("/coupon", h.applyCoupon)
	carts.DELETE("/coupon", h.removeCoupon)

	router.POST("/customers/register", h.register)
	router.POST("/customers/login", h.login)
	router.POST("/customers/refresh", h.refresh)

	authed := router.Group("", h.requireCustomer)
	authed.POST("/customers/logout", h.logout)
	authed.GET("/me", h.me)
	authed.PATCH("/me", h.updateMe)
	authed.POST("/checkout", h.cartSession, h.checkout)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", SessionHeader},
		ExposeHeaders:    []string{SessionHeader, requestIDHeader},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
