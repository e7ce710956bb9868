package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog record as read from the products table.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
	Color       string          `json:"color,omitempty"`
	Category    string          `json:"category"`
	Sizes       map[string]int  `json:"sizes"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Stock returns the available stock for size, zero when the size is unknown.
func (p Product) Stock(size string) int {
	if p.Sizes == nil {
		return 0
	}
	return p.Sizes[size]
}
