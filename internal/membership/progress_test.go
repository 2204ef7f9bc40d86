package membership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"technest/internal/membership"
)

func TestCompute_PartialProgress(t *testing.T) {
	p := membership.Compute(45_200_000, 50_000_000)
	assert.InDelta(t, 90.4, p.Percent, 0.001)
	assert.Equal(t, 4_800_000, p.Remaining)
}

func TestCompute_OverTargetClampsRemainingToZero(t *testing.T) {
	p := membership.Compute(60_000_000, 50_000_000)
	assert.Equal(t, 100.0, p.Percent)
	assert.Equal(t, 0, p.Remaining)
}

func TestCompute_ZeroTargetYieldsZeroPercent(t *testing.T) {
	p := membership.Compute(1_000_000, 0)
	assert.Equal(t, 0.0, p.Percent)
	assert.Equal(t, 0, p.Remaining)

	p = membership.Compute(1_000_000, -5)
	assert.Equal(t, 0.0, p.Percent)
}

func TestCompute_NegativeSpendTreatedAsZero(t *testing.T) {
	p := membership.Compute(-100, 1000)
	assert.Equal(t, 0.0, p.Percent)
	assert.Equal(t, 1000, p.Remaining)
}

func TestStatus_FreezeAtTargetKeepsStoredTier(t *testing.T) {
	calc := membership.NewCalculator()
	st := calc.Status("Premium", 60_000_000)
	assert.Equal(t, "Premium", st.Tier)
	assert.Equal(t, "VIP", st.NextTier)
	assert.Equal(t, 100.0, st.Progress.Percent)
	assert.Equal(t, 0, st.Progress.Remaining)
}

func TestStatus_AutoAdvanceFollowsSpend(t *testing.T) {
	calc := membership.Calculator{Ladder: membership.DefaultLadder, Policy: membership.AutoAdvance}
	st := calc.Status("Basic", 60_000_000)
	assert.Equal(t, "VIP", st.Tier)
	assert.Empty(t, st.NextTier)
	assert.Equal(t, 0, st.Progress.Remaining)
}

func TestStatus_DashboardNumbers(t *testing.T) {
	calc := membership.NewCalculator()
	st := calc.Status("Premium", 45_200_000)
	assert.Equal(t, "VIP", st.NextTier)
	assert.InDelta(t, 90.4, st.Progress.Percent, 0.001)
	assert.Equal(t, 4_800_000, st.Progress.Remaining)
}
