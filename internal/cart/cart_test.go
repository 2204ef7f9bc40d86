package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technest/internal/cart"
)

func TestAdd_MergesLines(t *testing.T) {
	var st cart.State
	st = st.Add(1, 100000, 1)
	st = st.Add(1, 100000, 1)

	require.Len(t, st.Lines, 1)
	assert.Equal(t, 2, st.Lines[0].Quantity)
	assert.Equal(t, 2, st.ItemCount())
}

func TestAdd_ZeroQuantityCountsAsOne(t *testing.T) {
	var st cart.State
	st = st.Add(7, 5000, 0)
	require.Len(t, st.Lines, 1)
	assert.Equal(t, 1, st.Lines[0].Quantity)
}

func TestSubtotal_Additive(t *testing.T) {
	var st cart.State
	st = st.Add(1, 100000, 2)
	st = st.Add(2, 50000, 1)
	assert.Equal(t, 250000, st.Subtotal())
	assert.Equal(t, 3, st.ItemCount())
}

func TestUpdateQuantity_BelowOneFailsAndLeavesStateUnchanged(t *testing.T) {
	var st cart.State
	st = st.Add(1, 100000, 2)

	next, err := st.UpdateQuantity(1, 0)
	require.ErrorIs(t, err, cart.ErrInvalidQuantity)
	assert.Equal(t, st, next)

	next, err = st.UpdateQuantity(1, -3)
	require.ErrorIs(t, err, cart.ErrInvalidQuantity)
	assert.Equal(t, 2, next.Lines[0].Quantity)
}

func TestUpdateQuantity_Replaces(t *testing.T) {
	var st cart.State
	st = st.Add(1, 100000, 2)
	next, err := st.UpdateQuantity(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, next.Lines[0].Quantity)
	// original snapshot untouched
	assert.Equal(t, 2, st.Lines[0].Quantity)
}

func TestUpdateQuantity_MissingLineIsNoop(t *testing.T) {
	var st cart.State
	st = st.Add(1, 100000, 1)
	next, err := st.UpdateQuantity(99, 3)
	require.NoError(t, err)
	assert.Equal(t, st, next)
}

func TestRemove_EmptyCartIsNoop(t *testing.T) {
	var st cart.State
	next := st.Remove(42)
	assert.Empty(t, next.Lines)
	assert.Equal(t, 0, next.Subtotal())
}

func TestRemove_DropsOnlyTargetLine(t *testing.T) {
	var st cart.State
	st = st.Add(1, 100000, 2)
	st = st.Add(2, 50000, 1)
	next := st.Remove(1)
	require.Len(t, next.Lines, 1)
	assert.Equal(t, 2, next.Lines[0].ProductID)
	assert.Equal(t, 50000, next.Subtotal())
}

func TestOperationsAreIdempotentAcrossNoops(t *testing.T) {
	var a, b cart.State
	a = a.Add(1, 1000, 1)
	b = b.Add(1, 1000, 1)

	// extra no-ops on b must not change the final state
	b = b.Remove(99)
	b, _ = b.UpdateQuantity(42, 3)

	assert.Equal(t, a, b)
}
