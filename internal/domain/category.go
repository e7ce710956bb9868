package domain

// Category summarizes one catalog category for navigation.
type Category struct {
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
}
