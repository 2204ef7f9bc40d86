package services

import (
	"errors"
	"fmt"

	"technest/internal/cart"
	"technest/internal/domain"
	"technest/internal/repos"
	"technest/internal/voucher"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DefaultShippingFee is the flat delivery fee (Rupiah) unless waived by
// a free-shipping voucher.
const DefaultShippingFee = 25_000

var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrVoucherNotEligible  = errors.New("voucher is not eligible for this order")
)

type CheckoutService struct {
	DB       *sqlx.DB
	Carts    *repos.CartRepo
	Prods    *repos.ProductRepo
	Orders   *repos.OrderRepo
	Vouchers *repos.VoucherRepo
}

func NewCheckoutService(db *sqlx.DB, carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo, vouchers *repos.VoucherRepo) *CheckoutService {
	return &CheckoutService{DB: db, Carts: carts, Prods: prods, Orders: orders, Vouchers: vouchers}
}

// Place turns the session cart into an order: voucher applied through
// the evaluator, stock decremented, total paid from balance, spend
// accrued for membership, voucher burned — all in one transaction.
// The cart is cleared only after commit.
func (s *CheckoutService) Place(sessionID string, userID int, voucherCode string) (domain.Order, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(items) == 0 {
		return domain.Order{}, ErrCartEmpty
	}

	var st cart.State
	for _, it := range items {
		st = st.Add(it.ProductID, it.PriceAtAdd, it.Qty)
	}
	subtotal := st.Subtotal()

	disc := voucher.Discount{}
	if voucherCode != "" {
		v, err := s.Vouchers.ByCode(userID, voucherCode)
		if err != nil {
			return domain.Order{}, ErrNotFound
		}
		if !voucher.Eligible(v, subtotal) {
			return domain.Order{}, ErrVoucherNotEligible
		}
		disc = voucher.Apply(v, subtotal)
	}

	shipping := DefaultShippingFee
	if disc.ShippingWaived {
		shipping = 0
	}
	total := subtotal - disc.Amount + shipping

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Stock check-and-decrement in one statement per line.
	for _, it := range items {
		ok, err := s.Prods.DecrementStock(tx, it.ProductID, it.Qty)
		if err != nil {
			return domain.Order{}, err
		}
		if !ok {
			return domain.Order{}, fmt.Errorf("%w for %s", ErrInsufficientStock, it.Name)
		}
	}

	res, err := tx.Exec(`UPDATE users SET balance = balance - ? WHERE id=? AND balance >= ?`,
		total, userID, total)
	if err != nil {
		return domain.Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Order{}, ErrInsufficientBalance
	}

	orderID := uuid.NewString()
	if _, err := tx.Exec(`
	  INSERT INTO orders(id,user_id,subtotal,discount,shipping_fee,total,voucher_code,status)
	  VALUES(?,?,?,?,?,?,?,'PLACED')`,
		orderID, userID, subtotal, disc.Amount, shipping, total, voucherCode); err != nil {
		return domain.Order{}, err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id,product_id,name,qty,unit_price) VALUES(?,?,?,?,?)`,
			orderID, it.ProductID, it.Name, it.Qty, it.PriceAtAdd); err != nil {
			return domain.Order{}, err
		}
	}

	if voucherCode != "" {
		ok, err := s.Vouchers.MarkUsed(tx, userID, voucherCode)
		if err != nil {
			return domain.Order{}, err
		}
		if !ok {
			return domain.Order{}, ErrVoucherNotEligible
		}
	}

	if err := s.Orders.AccrueSpend(tx, userID, total); err != nil {
		return domain.Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}
	_ = s.Carts.Clear(cartID)

	return s.Orders.Get(orderID)
}
