// Package coupon holds the static registry of discount codes.
package coupon

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Catalog is a read-only registry of coupon rules keyed by normalized code.
type Catalog struct {
	rules  []domain.Coupon
	byCode map[string]int
	now    func() time.Time
}

// NewCatalog validates rules and indexes them by code. Codes must be unique
// regardless of case.
func NewCatalog(rules []domain.Coupon) (*Catalog, error) {
	c := &Catalog{
		rules:  make([]domain.Coupon, 0, len(rules)),
		byCode: make(map[string]int, len(rules)),
		now:    time.Now,
	}
	for _, r := range rules {
		key := Normalize(r.Code)
		if key == "" {
			return nil, fmt.Errorf("coupon code required: %w", domain.ErrInvalidInput)
		}
		if _, dup := c.byCode[key]; dup {
			return nil, fmt.Errorf("duplicate coupon code %q: %w", r.Code, domain.ErrAlreadyExists)
		}
		switch r.Type {
		case domain.CouponPercentage:
			if r.Value.IsNegative() || r.Value.GreaterThan(decimal.NewFromInt(100)) {
				return nil, fmt.Errorf("coupon %q: percentage must be within 0-100: %w", r.Code, domain.ErrInvalidInput)
			}
		case domain.CouponFixed:
			if r.Value.IsNegative() {
				return nil, fmt.Errorf("coupon %q: fixed value must not be negative: %w", r.Code, domain.ErrInvalidInput)
			}
		default:
			return nil, fmt.Errorf("coupon %q: unknown type %q: %w", r.Code, r.Type, domain.ErrInvalidInput)
		}
		c.byCode[key] = len(c.rules)
		c.rules = append(c.rules, r)
	}
	return c, nil
}

// Default returns the storefront's bundled coupon catalog.
func Default() *Catalog {
	c, err := NewCatalog(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("coupon: invalid default rules: %v", err))
	}
	return c
}

// DefaultRules lists the coupons shipped with the storefront.
func DefaultRules() []domain.Coupon {
	minFlat := decimal.NewFromInt(5000)
	return []domain.Coupon{
		{
			Code:        "WELCOME10",
			Type:        domain.CouponPercentage,
			Value:       decimal.NewFromInt(10),
			Description: "10% off on your order",
		},
		{
			Code:          "FLAT500",
			Type:          domain.CouponFixed,
			Value:         decimal.NewFromInt(500),
			MinOrderValue: &minFlat,
			Description:   "Flat ₹500 off on orders above ₹5000",
		},
		{
			Code:        "SUMMER20",
			Type:        domain.CouponPercentage,
			Value:       decimal.NewFromInt(20),
			Description: "20% Summer Sale",
		},
	}
}

// Lookup finds a coupon by exact code, ignoring case and surrounding
// whitespace. Expired coupons are treated as absent.
func (c *Catalog) Lookup(code string) (domain.Coupon, bool) {
	idx, ok := c.byCode[Normalize(code)]
	if !ok {
		return domain.Coupon{}, false
	}
	rule := c.rules[idx]
	if rule.Expired(c.now()) {
		return domain.Coupon{}, false
	}
	return rule, true
}

// All returns a copy of the rules in declaration order.
func (c *Catalog) All() []domain.Coupon {
	out := make([]domain.Coupon, len(c.rules))
	copy(out, c.rules)
	return out
}

// Normalize maps a user-entered code onto the catalog key form.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
