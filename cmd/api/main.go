package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/coupon"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	cartrepo "storefront/internal/repository/cart"
	customerrepo "storefront/internal/repository/customer"
	productrepo "storefront/internal/repository/product"
	tokenrepo "storefront/internal/repository/token"
	"storefront/internal/service/catalog"
	"storefront/internal/service/checkout"
	customersvc "storefront/internal/service/customer"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{ServiceName: "api", Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var dbpool *pgxpool.Pool
	if cfg.DBConnString != "" {
		dbpool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to db")
		}
		defer dbpool.Close()
	} else {
		log.Warn().Msg("DB_DSN not set; serving demo catalog with in-memory accounts")
	}

	slot, closeSlot, err := openSlot(cfg, dbpool, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Cart.Backend).Msg("open cart storage")
	}
	defer closeSlot()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	carts := cart.NewSessions(cart.Options{
		Coupons:        coupon.Default(),
		Slot:           slot,
		CouponPolicy:   cart.CouponPolicy(cfg.Cart.CouponPersistence),
		CurrencySymbol: cfg.Checkout.CurrencySymbol,
		Logger:         log,
		Recorder:       metrics.NewCartMetrics(reg),
	}, cfg.Cart.MaxSessions)

	var (
		products  productrepo.Repository
		customers customerrepo.Repository = customerrepo.NewMemory()
		tokens    tokenrepo.Repository    = tokenrepo.NewMemory()
		pinger    httpserver.Pinger
	)
	if dbpool != nil {
		products = productrepo.NewPostgres(dbpool, log)
		customers = customerrepo.NewPostgres(dbpool, log)
		tokens = tokenrepo.NewPostgres(dbpool)
		pinger = dbpool
	}

	catalogService := catalog.New(products, catalog.Options{Fallback: cfg.CatalogFallback, Logger: log})
	if products != nil {
		go func() {
			if err := catalogService.Watch(ctx); err != nil {
				log.Error().Err(err).Msg("product change feed stopped")
			}
		}()
	}

	customerService := customersvc.New(customers, tokens, log)
	checkoutService := checkout.New(checkout.Config{
		WhatsAppNumber: cfg.Checkout.WhatsAppNumber,
		CurrencySymbol: cfg.Checkout.CurrencySymbol,
		PointsPer:      cfg.Checkout.PointsPer,
	}, customerService, log)

	srv, err := httpserver.New(cfg.HTTPAddr, log, pinger, httpserver.Deps{
		Catalog:     catalogService,
		Coupons:     coupon.Default(),
		Carts:       carts,
		Customers:   customerService,
		Checkout:    checkoutService,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("cart_backend", cfg.Cart.Backend).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		log.Info().Msg("server stopped")
	}
}

// openSlot returns the cart storage selected by CART_BACKEND and a func
// releasing it.
func openSlot(cfg config.Config, pool *pgxpool.Pool, log zerolog.Logger) (cart.Slot, func(), error) {
	noop := func() {}
	switch cfg.Cart.Backend {
	case config.BackendFile:
		repo, err := cartrepo.NewFile(cfg.Cart.Dir)
		return repo, noop, err
	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, noop, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		return cartrepo.NewRedis(client, cfg.Cart.TTL), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		return cartrepo.NewPostgres(pool, log), noop, nil
	default:
		return cartrepo.NewMemory(), noop, nil
	}
}
