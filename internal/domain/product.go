package domain

// Product represents an item in the catalog. The catalog is fixed
// reference data: products are never mutated at runtime.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}
