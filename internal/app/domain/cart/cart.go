// Package cart implements the in-memory shopping cart item list. The cart is
// never persisted: it is rebuilt empty on every process start.
//
// All operations are copy-on-write over the item slice so callers holding an
// older snapshot never observe mutation. The list maintains two invariants:
// at most one item per product identifier, and every quantity >= 1 (an item
// whose quantity would reach 0 is removed instead).
package cart

import "github.com/golden-burguer/appcore/internal/app/domain/product"

// Item is a product plus the selected quantity.
type Item struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Add returns items with p added: an existing entry for p.ID has its quantity
// incremented, otherwise a new entry with quantity 1 is appended at the end.
// Relative order of the other entries is preserved.
func Add(items []Item, p product.Product) []Item {
	next := make([]Item, len(items))
	copy(next, items)

	for i, it := range next {
		if it.Product.ID == p.ID {
			next[i] = Item{Product: it.Product, Quantity: it.Quantity + 1}
			return next
		}
	}
	return append(next, Item{Product: p, Quantity: 1})
}

// Increase returns items with the quantity for productID incremented. A
// missing product is a no-op, not an error.
func Increase(items []Item, productID int) []Item {
	next := make([]Item, len(items))
	copy(next, items)

	for i, it := range next {
		if it.Product.ID == productID {
			next[i] = Item{Product: it.Product, Quantity: it.Quantity + 1}
			break
		}
	}
	return next
}

// Decrease returns items with the quantity for productID decremented. At
// quantity 1 the entry is removed entirely. A missing product is a no-op.
func Decrease(items []Item, productID int) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Product.ID != productID {
			next = append(next, it)
			continue
		}
		if it.Quantity > 1 {
			next = append(next, Item{Product: it.Product, Quantity: it.Quantity - 1})
		}
	}
	return next
}

// Subtotal sums price * quantity over all items. An empty cart yields 0.
func Subtotal(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}
