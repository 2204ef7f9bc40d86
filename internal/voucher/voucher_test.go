package voucher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"technest/internal/domain"
	"technest/internal/voucher"
)

func tech20() domain.Voucher {
	return domain.Voucher{
		Code: "TECH20", Kind: domain.VoucherPercentage,
		Percent: 20, MinPurchase: 500_000, MaxDiscount: 100_000,
	}
}

func TestEligible(t *testing.T) {
	v := tech20()
	assert.True(t, voucher.Eligible(v, 500_000))
	assert.False(t, voucher.Eligible(v, 499_999))

	v.IsUsed = true
	assert.False(t, voucher.Eligible(v, 1_000_000))

	free := domain.Voucher{Code: "FREESHIP", Kind: domain.VoucherFreeShipping}
	assert.True(t, voucher.Eligible(free, 0), "zero minimum means no minimum")
}

func TestApply_PercentageIsCapped(t *testing.T) {
	d := voucher.Apply(tech20(), 1_000_000)
	assert.Equal(t, 100_000, d.Amount, "20 percent of 1,000,000 must cap at 100,000")
	assert.False(t, d.ShippingWaived)
}

func TestApply_PercentageBelowCap(t *testing.T) {
	welcome := domain.Voucher{Code: "WELCOME10", Kind: domain.VoucherPercentage, Percent: 10, MinPurchase: 200_000}
	d := voucher.Apply(welcome, 300_000)
	assert.Equal(t, 30_000, d.Amount, "uncapped percentage applies in full")
}

func TestApply_FixedNeverExceedsSubtotal(t *testing.T) {
	v := domain.Voucher{Code: "BDAY50", Kind: domain.VoucherFixed, Amount: 50_000}
	d := voucher.Apply(v, 30_000)
	assert.Equal(t, 30_000, d.Amount)

	d = voucher.Apply(v, 200_000)
	assert.Equal(t, 50_000, d.Amount)
}

func TestApply_FreeShippingIsSeparateChannel(t *testing.T) {
	v := domain.Voucher{Code: "FREESHIP", Kind: domain.VoucherFreeShipping}
	d := voucher.Apply(v, 750_000)
	assert.Equal(t, 0, d.Amount)
	assert.True(t, d.ShippingWaived)
}

func TestApply_IneligibleYieldsZero(t *testing.T) {
	v := tech20()
	v.IsUsed = true
	d := voucher.Apply(v, 1_000_000)
	assert.Equal(t, voucher.Discount{}, d)
}
