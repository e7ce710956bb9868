package domain

import (
	"strings"
	"time"
)

// Customer is a storefront account holder. Shipping details live on the
// account itself; there is no separate address book.
type Customer struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	Name                 string    `json:"name"`
	Address1             string    `json:"address1"`
	Address2             string    `json:"address2,omitempty"`
	City                 string    `json:"city"`
	State                string    `json:"state"`
	Pincode              string    `json:"pincode"`
	Country              string    `json:"country"`
	PhoneNumber          string    `json:"phoneNumber"`
	AlternatePhoneNumber string    `json:"alternatePhoneNumber,omitempty"`
	Points               int       `json:"points"`
	CreatedAt            time.Time `json:"createdAt"`
}

// FullAddress joins the non-empty address parts in display order.
func (c Customer) FullAddress() string {
	parts := []string{c.Address1, c.Address2, c.City, c.State, c.Country, c.Pincode}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
