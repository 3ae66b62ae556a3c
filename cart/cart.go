// Package cart holds the client-side cart aggregate. The server never
// persists a cart: the browser keeps this structure in local storage and
// sends it wholesale at checkout.
package cart

import "sort"

// Line is one product+variant selection in the cart. UnitPrice and Name are
// snapshots taken when the line was added, so the cart renders without a
// round-trip.
type Line struct {
	ProductID        uint              `json:"product_id"`
	Name             string            `json:"name"`
	VariantSelection map[string]string `json:"variant_selection,omitempty"`
	Quantity         int               `json:"quantity"`
	UnitPrice        float64           `json:"unit_price"`
}

// Subtotal is the line's contribution to the cart total.
func (l Line) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart is the aggregate. The zero value is an empty cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// AddItem merges into an existing line when product and variant selection
// match, otherwise appends. A zero quantity defaults to 1; negative
// quantities are rejected and the cart is left unchanged.
func (c *Cart) AddItem(line Line) {
	if line.Quantity < 0 {
		return
	}
	if line.Quantity == 0 {
		line.Quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID && sameSelection(c.Lines[i].VariantSelection, line.VariantSelection) {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// UpdateQuantity sets the quantity of the line at idx; dropping to zero or
// below removes the line. Out-of-range indexes are ignored.
func (c *Cart) UpdateQuantity(idx, quantity int) {
	if idx < 0 || idx >= len(c.Lines) {
		return
	}
	if quantity <= 0 {
		c.RemoveItem(idx)
		return
	}
	c.Lines[idx].Quantity = quantity
}

// RemoveItem deletes the line at idx.
func (c *Cart) RemoveItem(idx int) {
	if idx < 0 || idx >= len(c.Lines) {
		return
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total is the derived cart total: sum of line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func sameSelection(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		bv, ok := b[k]
		if !ok || a[k] != bv {
			return false
		}
	}
	return true
}
