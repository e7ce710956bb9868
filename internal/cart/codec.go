package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"storefront/internal/domain"
)

// Encode serializes lines into the persisted JSON array layout.
func Encode(lines []domain.LineItem) ([]byte, error) {
	if lines == nil {
		lines = []domain.LineItem{}
	}
	return json.Marshal(lines)
}

// Decode parses a persisted cart. Any malformed entry rejects the whole
// payload so callers can fall back to an empty cart.
func Decode(data []byte) ([]domain.LineItem, error) {
	var lines []domain.LineItem
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" || strings.TrimSpace(l.SelectedSize) == "" {
			return nil, fmt.Errorf("decode cart: line %d missing product or size", i)
		}
		if l.Quantity < 1 {
			return nil, fmt.Errorf("decode cart: line %d has quantity %d", i, l.Quantity)
		}
		if l.Price.IsNegative() {
			return nil, fmt.Errorf("decode cart: line %d has negative price", i)
		}
		id := l.ProductID + "\x00" + l.SelectedSize
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("decode cart: duplicate line for product %s size %s", l.ProductID, l.SelectedSize)
		}
		seen[id] = struct{}{}
	}
	return lines, nil
}
