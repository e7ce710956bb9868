package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponType selects how a coupon's value is interpreted.
type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFixed      CouponType = "fixed"
)

// Coupon is a discount rule from the static coupon catalog.
type Coupon struct {
	Code          string           `json:"code"`
	Type          CouponType       `json:"type"`
	Value         decimal.Decimal  `json:"value"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue,omitempty"`
	Description   string           `json:"description,omitempty"`
	ExpiresAt     *time.Time       `json:"expiresAt,omitempty"`
}

// HasMinimum reports whether the coupon is gated by a minimum subtotal.
func (c Coupon) HasMinimum() bool {
	return c.MinOrderValue != nil && c.MinOrderValue.IsPositive()
}

// MinimumMet reports whether subtotal satisfies the coupon's minimum, if any.
func (c Coupon) MinimumMet(subtotal decimal.Decimal) bool {
	if !c.HasMinimum() {
		return true
	}
	return subtotal.GreaterThanOrEqual(*c.MinOrderValue)
}

// Expired reports whether the coupon carries an expiry that has passed.
func (c Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
