package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	lines := []domain.LineItem{
		{ProductID: "1", Title: "Air Jordan 1", Price: dec("3499"), Category: "Sneakers", Images: []string{"a.jpg", "b.jpg"}, SelectedSize: "UK8", Quantity: 2},
		{ProductID: "1", Title: "Air Jordan 1", Price: dec("3499"), Category: "Sneakers", Images: []string{"a.jpg", "b.jpg"}, SelectedSize: "UK9", Quantity: 1},
		{ProductID: "2", Title: "Yeezy Slide", Price: dec("1299.99"), Category: "Slides", Images: []string{}, SelectedSize: "UK7", Quantity: 5},
	}

	data, err := Encode(lines)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, got, len(lines))
	for i := range lines {
		assert.Equal(t, lines[i].ProductID, got[i].ProductID)
		assert.Equal(t, lines[i].SelectedSize, got[i].SelectedSize)
		assert.Equal(t, lines[i].Quantity, got[i].Quantity)
		assert.True(t, lines[i].Price.Equal(got[i].Price))
		assert.Equal(t, lines[i].Title, got[i].Title)
		assert.Equal(t, lines[i].Category, got[i].Category)
		assert.Equal(t, lines[i].Images, got[i].Images)
	}
}

func TestEncode_EmptyIsArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestDecode_AcceptsNumericPrices(t *testing.T) {
	got, err := Decode([]byte(`[{"productId":"1","title":"AJ1","price":3499,"category":"Sneakers","images":["x"],"selectedSize":"UK8","quantity":1}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assertDec(t, "3499", got[0].Price)
}

func TestDecode_Rejects(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{`,
		"object":         `{"productId":"1"}`,
		"missing size":   `[{"productId":"1","price":1,"quantity":1}]`,
		"missing id":     `[{"selectedSize":"UK8","price":1,"quantity":1}]`,
		"zero quantity":  `[{"productId":"1","selectedSize":"UK8","price":1,"quantity":0}]`,
		"negative price": `[{"productId":"1","selectedSize":"UK8","price":-1,"quantity":1}]`,
		"duplicate line": `[{"productId":"1","selectedSize":"UK8","price":1,"quantity":1},{"productId":"1","selectedSize":"UK8","price":1,"quantity":2}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(payload))
			assert.Error(t, err)
		})
	}
}
