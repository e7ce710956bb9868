package domain

import "github.com/shopspring/decimal"

// LineItem is a (product, size) selection with a quantity and the product
// snapshot captured when it was first added.
type LineItem struct {
	ProductID    string          `json:"productId"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Images       []string        `json:"images"`
	SelectedSize string          `json:"selectedSize"`
	Quantity     int             `json:"quantity"`
}

// LineTotal is the unit price multiplied by quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Matches reports whether the line is identified by productID and size.
func (l LineItem) Matches(productID, size string) bool {
	return l.ProductID == productID && l.SelectedSize == size
}
