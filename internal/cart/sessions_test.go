package cart

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/coupon"
	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

func TestSessions_IsolatesAndReuses(t *testing.T) {
	ctx := context.Background()
	slot := cartrepo.NewMemory()
	sessions := NewSessions(Options{Coupons: coupon.Default(), Slot: slot, Logger: zerolog.Nop()}, 0)
	idA, idB := uuid.NewString(), uuid.NewString()

	a, err := sessions.Get(ctx, idA)
	require.NoError(t, err)
	b, err := sessions.Get(ctx, idB)
	require.NoError(t, err)
	require.NoError(t, a.AddItem(ctx, product("1", "100"), "UK8"))

	assert.Equal(t, 1, a.ItemCount())
	assert.Zero(t, b.ItemCount())

	again, err := sessions.Get(ctx, " "+strings.ToUpper(idA)+" ")
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.Equal(t, 2, sessions.Len())
}

func TestSessions_ForgetReloadsFromSlot(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(Options{Coupons: coupon.Default(), Slot: cartrepo.NewMemory(), Logger: zerolog.Nop()}, 0)
	id := uuid.NewString()

	a, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, a.AddItem(ctx, product("1", "100"), "UK8"))

	sessions.Forget(id)
	reloaded, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.NotSame(t, a, reloaded)
	assert.Equal(t, 1, reloaded.ItemCount())
}

func TestSessions_RejectsMalformedIDs(t *testing.T) {
	sessions := NewSessions(Options{Logger: zerolog.Nop()}, 0)
	for _, id := range []string{"  ", "a", uuid.NewString() + ":coupon", "../etc"} {
		_, err := sessions.Get(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, id)
	}
	assert.Zero(t, sessions.Len())
}

func TestSessions_CouponSurvivesOtherSessions(t *testing.T) {
	ctx := context.Background()
	slot := cartrepo.NewMemory()
	sessions := NewSessions(Options{
		Coupons:      coupon.Default(),
		Slot:         slot,
		CouponPolicy: CouponInSlot,
		Logger:       zerolog.Nop(),
	}, 0)
	id := uuid.NewString()

	a, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, a.AddItem(ctx, product("1", "100"), "UK8"))
	require.True(t, a.ApplyCoupon(ctx, "WELCOME10").Success)

	for i := 0; i < 5; i++ {
		other, err := sessions.Get(ctx, uuid.NewString())
		require.NoError(t, err)
		require.NoError(t, other.AddItem(ctx, product("2", "50"), "UK7"))
	}
	assert.NotEqual(t, Key(id), CouponKey(Key(id)))
	assert.False(t, strings.HasPrefix(CouponKey(Key(id)), "cart:"))

	sessions.Forget(id)
	reloaded, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, reloaded.AppliedCoupon())
	assert.Equal(t, "WELCOME10", reloaded.AppliedCoupon().Code)
}

func TestSessions_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(Options{Coupons: coupon.Default(), Slot: cartrepo.NewMemory(), Logger: zerolog.Nop()}, 2)
	first, second, third := uuid.NewString(), uuid.NewString(), uuid.NewString()

	a, err := sessions.Get(ctx, first)
	require.NoError(t, err)
	require.NoError(t, a.AddItem(ctx, product("1", "100"), "UK8"))
	_, err = sessions.Get(ctx, second)
	require.NoError(t, err)
	_, err = sessions.Get(ctx, third)
	require.NoError(t, err)
	assert.Equal(t, 2, sessions.Len())

	reloaded, err := sessions.Get(ctx, first)
	require.NoError(t, err)
	assert.NotSame(t, a, reloaded)
	assert.Equal(t, 1, reloaded.ItemCount())
	assert.Equal(t, 2, sessions.Len())
}
