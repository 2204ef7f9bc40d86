// Package cart implements the client-visible cart aggregation rules:
// one line per product, merged quantities, and totals recomputed from
// line data on every call. All operations return a new State so callers
// replace their reference instead of mutating shared state.
package cart

import "errors"

// ErrInvalidQuantity is returned by UpdateQuantity for quantities below 1.
// Removal is explicit via Remove, never a silent floor to zero.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Line struct {
	ProductID int `json:"product_id"`
	UnitPrice int `json:"unit_price"`
	Quantity  int `json:"quantity"`
}

// State is an immutable snapshot of a cart. Lines keep insertion order.
type State struct {
	Lines []Line `json:"lines"`
}

func (s State) clone() State {
	out := State{Lines: make([]Line, len(s.Lines))}
	copy(out.Lines, s.Lines)
	return out
}

// Add merges qty into an existing line for productID or appends a new one.
// A qty below 1 counts as 1, matching the storefront's add button.
func (s State) Add(productID, unitPrice, qty int) State {
	if qty < 1 {
		qty = 1
	}
	next := s.clone()
	for i := range next.Lines {
		if next.Lines[i].ProductID == productID {
			next.Lines[i].Quantity += qty
			return next
		}
	}
	next.Lines = append(next.Lines, Line{ProductID: productID, UnitPrice: unitPrice, Quantity: qty})
	return next
}

// UpdateQuantity replaces the quantity of an existing line. The input
// state is returned unchanged alongside the error on failure.
func (s State) UpdateQuantity(productID, qty int) (State, error) {
	if qty < 1 {
		return s, ErrInvalidQuantity
	}
	next := s.clone()
	for i := range next.Lines {
		if next.Lines[i].ProductID == productID {
			next.Lines[i].Quantity = qty
			return next, nil
		}
	}
	return s, nil
}

// Remove drops the line for productID. Removing an absent line is a no-op.
func (s State) Remove(productID int) State {
	next := State{Lines: make([]Line, 0, len(s.Lines))}
	for _, l := range s.Lines {
		if l.ProductID != productID {
			next.Lines = append(next.Lines, l)
		}
	}
	return next
}

// Subtotal sums unit price times quantity over all lines.
func (s State) Subtotal() int {
	total := 0
	for _, l := range s.Lines {
		total += l.UnitPrice * l.Quantity
	}
	return total
}

// ItemCount is the number of units across lines; the cart badge counts
// units, not rows.
func (s State) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}
