package services

import (
	"errors"

	"technest/internal/cart"
	"technest/internal/repos"
)

var ErrNotFound = errors.New("not found")

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// CartView is the response shape for the cart endpoints: the stored
// lines plus totals recomputed through the aggregator.
type CartView struct {
	Items     []repos.CartItemRow `json:"items"`
	Subtotal  int                 `json:"subtotal"`
	ItemCount int                 `json:"item_count"`
}

// state rebuilds the pure aggregate from stored rows so totals always
// come from the same arithmetic the engine tests pin down.
func state(items []repos.CartItemRow) cart.State {
	var st cart.State
	for _, it := range items {
		st = st.Add(it.ProductID, it.PriceAtAdd, it.Qty)
	}
	return st
}

func (s *CartService) Add(sessionID string, productID, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return ErrNotFound
	}
	return s.Carts.UpsertItem(cartID, productID, qty, p.Price)
}

// UpdateQuantity replaces a line's quantity. Quantities below 1 fail
// with cart.ErrInvalidQuantity and leave the stored cart untouched;
// updating an absent line is a no-op.
func (s *CartService) UpdateQuantity(sessionID string, productID, qty int) error {
	if qty < 1 {
		return cart.ErrInvalidQuantity
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	_, err = s.Carts.SetQty(cartID, productID, qty)
	return err
}

func (s *CartService) Remove(sessionID string, productID int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID)
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, err
	}
	st := state(items)
	return CartView{Items: items, Subtotal: st.Subtotal(), ItemCount: st.ItemCount()}, nil
}
