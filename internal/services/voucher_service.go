package services

import (
	"technest/internal/domain"
	"technest/internal/repos"
	"technest/internal/voucher"
)

type VoucherService struct {
	Vouchers *repos.VoucherRepo
}

func NewVoucherService(vouchers *repos.VoucherRepo) *VoucherService {
	return &VoucherService{Vouchers: vouchers}
}

func (s *VoucherService) ListByUser(userID int) ([]domain.Voucher, error) {
	return s.Vouchers.ListByUser(userID)
}

// Preview is the checkout-page dry run: is the code usable against this
// subtotal, and what would it take off.
type Preview struct {
	Voucher  domain.Voucher   `json:"voucher"`
	Eligible bool             `json:"eligible"`
	Discount voucher.Discount `json:"discount"`
}

func (s *VoucherService) Check(userID int, code string, subtotal int) (Preview, error) {
	v, err := s.Vouchers.ByCode(userID, code)
	if err != nil {
		return Preview{}, ErrNotFound
	}
	return Preview{
		Voucher:  v,
		Eligible: voucher.Eligible(v, subtotal),
		Discount: voucher.Apply(v, subtotal),
	}, nil
}
