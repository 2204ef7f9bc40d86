package domain

// Voucher kinds. Free shipping waives the shipping fee and never touches
// the subtotal discount.
const (
	VoucherPercentage   = "percentage"
	VoucherFixed        = "fixed"
	VoucherFreeShipping = "free-shipping"
)

type Voucher struct {
	ID          int    `db:"id" json:"id"`
	UserID      int    `db:"user_id" json:"-"`
	Code        string `db:"code" json:"code"`
	Kind        string `db:"kind" json:"kind"`
	Percent     int    `db:"percent" json:"percent,omitempty"`           // percentage kind
	Amount      int    `db:"amount" json:"amount,omitempty"`             // fixed kind
	MinPurchase int    `db:"min_purchase" json:"min_purchase"`           // 0 = no minimum
	MaxDiscount int    `db:"max_discount" json:"max_discount,omitempty"` // 0 = uncapped
	Description string `db:"description" json:"description,omitempty"`
	IsUsed      bool   `db:"is_used" json:"is_used"`
	ExpiresAt   string `db:"expires_at" json:"expires_at,omitempty"`
}
