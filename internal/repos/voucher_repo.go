package repos

import (
	"technest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type VoucherRepo struct{ db *sqlx.DB }

func NewVoucherRepo(db *sqlx.DB) *VoucherRepo { return &VoucherRepo{db: db} }

const voucherCols = `id, user_id, code, kind, percent, amount, min_purchase, max_discount, description, is_used, expires_at`

func (r *VoucherRepo) ListByUser(userID int) ([]domain.Voucher, error) {
	out := []domain.Voucher{}
	err := r.db.Select(&out, `SELECT `+voucherCols+` FROM vouchers WHERE user_id=? ORDER BY id`, userID)
	return out, err
}

func (r *VoucherRepo) ByCode(userID int, code string) (domain.Voucher, error) {
	var v domain.Voucher
	err := r.db.Get(&v, `SELECT `+voucherCols+` FROM vouchers WHERE user_id=? AND code=?`, userID, code)
	return v, err
}

// MarkUsed flips is_used inside tx. The WHERE guard makes redemption
// single-use even if two checkouts race on the same code.
func (r *VoucherRepo) MarkUsed(tx *sqlx.Tx, userID int, code string) (bool, error) {
	res, err := tx.Exec(`UPDATE vouchers SET is_used=1 WHERE user_id=? AND code=? AND is_used=0`, userID, code)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
