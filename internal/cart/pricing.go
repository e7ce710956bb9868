package cart

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// minorUnitPlaces is the number of decimal places in the storefront currency.
const minorUnitPlaces = 2

var hundred = decimal.NewFromInt(100)

// Totals are the values derived from a cart's lines and applied coupon.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// Price derives totals from lines and the applied coupon, if any. It has no
// side effects; a coupon whose minimum is no longer met contributes nothing.
func Price(lines []domain.LineItem, applied *domain.Coupon) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
		count += l.Quantity
	}

	discount := Discount(subtotal, applied)
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     total,
		ItemCount: count,
	}
}

// Discount returns the amount a coupon takes off subtotal. Fixed discounts
// are not capped here; the total is floored at zero instead.
func Discount(subtotal decimal.Decimal, applied *domain.Coupon) decimal.Decimal {
	if applied == nil || !applied.MinimumMet(subtotal) {
		return decimal.Zero
	}
	switch applied.Type {
	case domain.CouponPercentage:
		return subtotal.Mul(applied.Value).Div(hundred).Round(minorUnitPlaces)
	case domain.CouponFixed:
		return applied.Value
	default:
		return decimal.Zero
	}
}
