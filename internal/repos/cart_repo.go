package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	ProductID  int    `db:"product_id" json:"product_id"`
	Name       string `db:"name" json:"name"`
	Image      string `db:"image_url" json:"image,omitempty"`
	Qty        int    `db:"qty" json:"quantity"`
	PriceAtAdd int    `db:"price_at_add" json:"unit_price"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// UpsertItem merges qty into an existing line or inserts a new one,
// mirroring the aggregator's add semantics at the storage level.
func (r *CartRepo) UpsertItem(cartID string, productID, qty, price int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,price_at_add,created_at)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty, price)
	return err
}

// SetQty replaces a line's quantity; returns false when no line exists.
func (r *CartRepo) SetQty(cartID string, productID, qty int) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE cart_items SET qty=?, updated_at=CURRENT_TIMESTAMP
		WHERE cart_id=? AND product_id=?`, qty, cartID, productID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveItem deletes a line. Absent lines are a no-op, not an error.
func (r *CartRepo) RemoveItem(cartID string, productID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id=? AND product_id=?`, cartID, productID)
	return err
}

func (r *CartRepo) Items(cartID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT ci.product_id, p.name, p.image_url, ci.qty, ci.price_at_add
	  FROM cart_items ci JOIN products p ON p.id=ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at, ci.product_id
	`, cartID)
	return rows, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
