package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Cart storage backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// DBConnString is optional; without it the API serves the demo catalog
	// and keeps accounts in memory.
	DBConnString    string        `envconfig:"DB_DSN"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS"`

	Cart     CartConfig
	Redis    RedisConfig
	Checkout CheckoutConfig

	CatalogFallback bool `envconfig:"CATALOG_FALLBACK" default:"true"`
}

// CartConfig selects where carts persist and whether coupons persist with them.
type CartConfig struct {
	Backend           string        `envconfig:"CART_BACKEND" default:"file"`
	Dir               string        `envconfig:"CART_DIR" default:"./data/carts"`
	CouponPersistence string        `envconfig:"CART_COUPON_PERSISTENCE" default:"memory"`
	TTL               time.Duration `envconfig:"CART_TTL" default:"0s"`
	// MaxSessions bounds the carts kept live in memory; older ones reload
	// from storage on their next request.
	MaxSessions int `envconfig:"CART_MAX_SESSIONS" default:"10000"`
}

type RedisConfig struct {
	URL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// CheckoutConfig configures the WhatsApp order hand-off.
type CheckoutConfig struct {
	WhatsAppNumber string `envconfig:"WHATSAPP_NUMBER" default:"919963163777"`
	CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"₹"`
	// PointsPer is the order value that earns one loyalty point; 0 disables.
	PointsPer decimal.Decimal `envconfig:"CHECKOUT_POINTS_PER" default:"100"`
}

// FromEnv loads an optional .env file, then builds Config from the
// environment. Variables already set win over the file.
func FromEnv(dotenvPaths ...string) (Config, error) {
	if err := godotenv.Load(dotenvPaths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Cart.Backend = strings.ToLower(strings.TrimSpace(c.Cart.Backend))
	switch c.Cart.Backend {
	case BackendFile, BackendRedis, BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("CART_BACKEND %q: want file, redis, postgres or memory", c.Cart.Backend)
	}

	c.Cart.CouponPersistence = strings.ToLower(strings.TrimSpace(c.Cart.CouponPersistence))
	switch c.Cart.CouponPersistence {
	case "memory", "slot":
	default:
		return fmt.Errorf("CART_COUPON_PERSISTENCE %q: want memory or slot", c.Cart.CouponPersistence)
	}

	if c.Cart.Backend == BackendPostgres && strings.TrimSpace(c.DBConnString) == "" {
		return errors.New("CART_BACKEND=postgres requires DB_DSN")
	}
	if c.Cart.MaxSessions <= 0 {
		return errors.New("CART_MAX_SESSIONS must be positive")
	}
	if c.Cart.TTL < 0 {
		return errors.New("CART_TTL must not be negative")
	}
	if strings.TrimSpace(c.Checkout.WhatsAppNumber) == "" {
		return errors.New("WHATSAPP_NUMBER required")
	}
	if c.Checkout.PointsPer.IsNegative() {
		return errors.New("CHECKOUT_POINTS_PER must not be negative")
	}
	return nil
}
