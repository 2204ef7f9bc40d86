package repos

import (
	"technest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
	  SELECT id,user_id,subtotal,discount,shipping_fee,total,voucher_code,status,COALESCE(created_at,'') AS created_at
	  FROM orders WHERE id=?`, id); err != nil {
		return domain.Order{}, err
	}
	items := []domain.OrderItem{}
	if err := r.db.Select(&items, `
	  SELECT order_id,product_id,name,qty,unit_price FROM order_items WHERE order_id=?`, id); err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) ListByUser(userID int) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id,user_id,subtotal,discount,shipping_fee,total,voucher_code,status,COALESCE(created_at,'') AS created_at
	  FROM orders WHERE user_id=? ORDER BY created_at DESC`, userID)
	return out, err
}

// AccrueSpend adds an order total to the user's cumulative spend, the
// number the membership ladder reads.
func (r *OrderRepo) AccrueSpend(tx *sqlx.Tx, userID, total int) error {
	_, err := tx.Exec(`UPDATE users SET total_spent = total_spent + ? WHERE id=?`, total, userID)
	return err
}
