// Package voucher evaluates discount codes against a cart subtotal.
package voucher

import "technest/internal/domain"

// Discount is the result of applying a voucher. Amount reduces the
// subtotal; ShippingWaived is a separate channel and never folds into
// Amount (a free-shipping voucher on a Rp 0 fee simply waives nothing).
type Discount struct {
	Amount         int  `json:"amount"`
	ShippingWaived bool `json:"shipping_waived"`
}

// Eligible reports whether v can be redeemed against subtotal: unused
// and at or above the minimum purchase (0 = no minimum).
func Eligible(v domain.Voucher, subtotal int) bool {
	return !v.IsUsed && subtotal >= v.MinPurchase
}

// Apply computes the discount v yields on subtotal. Ineligible vouchers
// yield the zero Discount.
func Apply(v domain.Voucher, subtotal int) Discount {
	if !Eligible(v, subtotal) {
		return Discount{}
	}
	switch v.Kind {
	case domain.VoucherPercentage:
		d := subtotal * v.Percent / 100
		if v.MaxDiscount > 0 && d > v.MaxDiscount {
			d = v.MaxDiscount
		}
		return Discount{Amount: d}
	case domain.VoucherFixed:
		d := v.Amount
		if d > subtotal {
			d = subtotal
		}
		return Discount{Amount: d}
	case domain.VoucherFreeShipping:
		return Discount{ShippingWaived: true}
	}
	return Discount{}
}
