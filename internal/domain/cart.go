package domain

// CartLine is a product snapshot plus a quantity. A line with quantity
// below 1 is never stored; it is removed instead.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the pre-checkout ledger of selected products, ordered by
// insertion and keyed by product id (one line per product).
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Find returns the index of the line for the given product id, or -1.
func (c *Cart) Find(productID int64) int {
	for i, line := range c.Lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
