package services

import (
	"testing"

	"takeout/entity"
	"takeout/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddSnapshotsCatalogAndIncrements(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.cart.Add(ctx, f.customer, CartIn{DishID: f.dish.ID, Flavor: "mild"}))
	require.NoError(t, f.cart.Add(ctx, f.customer, CartIn{DishID: f.dish.ID, Flavor: "mild"}))
	require.NoError(t, f.cart.Add(ctx, f.customer, CartIn{DishID: f.dish.ID, Flavor: "hot"}))

	// ราคาเปลี่ยนทีหลังไม่กระทบของที่อยู่ในตะกร้า
	require.NoError(t, f.db.Model(&entity.Dish{}).Where("id = ?", f.dish.ID).Update("price", "99.00").Error)
	require.NoError(t, f.cart.Add(ctx, f.customer, CartIn{DishID: f.dish.ID, Flavor: "mild"}))

	items := f.cartItems(t)
	require.Len(t, items, 2)
	assert.Equal(t, "mild", items[0].Flavor)
	assert.Equal(t, 3, items[0].Number)
	assert.Equal(t, "Dish A", items[0].Name)
	assert.True(t, items[0].Amount.Equal(decimal.RequireFromString("10")))
	assert.Equal(t, "hot", items[1].Flavor)
	assert.Equal(t, 1, items[1].Number)
}

func TestCart_AddCombo(t *testing.T) {
	f := newFixture(t)
	combo := testutil.CreateCombo(t, f.db, "Set B", "120.00")

	require.NoError(t, f.cart.Add(ctx, f.customer, CartIn{ComboID: combo.ID}))
	items := f.cartItems(t)
	require.Len(t, items, 1)
	assert.Equal(t, combo.ID, items[0].ComboID)
	assert.Zero(t, items[0].DishID)
}

func TestCart_AddRejects(t *testing.T) {
	f := newFixture(t)
	off := testutil.CreateDish(t, f.db, "Gone", "5.00", false)

	assert.ErrorIs(t, f.cart.Add(ctx, f.customer, CartIn{}), ErrInvalidProduct)
	assert.ErrorIs(t, f.cart.Add(ctx, f.customer, CartIn{DishID: 1, ComboID: 1}), ErrInvalidProduct)
	assert.ErrorIs(t, f.cart.Add(ctx, f.customer, CartIn{DishID: 4242}), ErrProductNotFound)
	assert.ErrorIs(t, f.cart.Add(ctx, f.customer, CartIn{DishID: off.ID}), ErrProductOffSale)
	assert.Empty(t, f.cartItems(t))
}

func TestCart_SubDecrementsThenRemoves(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 2)
	in := CartIn{DishID: f.dish.ID}

	require.NoError(t, f.cart.Sub(ctx, f.customer, in))
	items := f.cartItems(t)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Number)

	require.NoError(t, f.cart.Sub(ctx, f.customer, in))
	assert.Empty(t, f.cartItems(t))

	assert.ErrorIs(t, f.cart.Sub(ctx, f.customer, in), ErrCartItemNotFound)
}

func TestCart_ClearOnlyOwnCart(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 1)
	other := Customer(testutil.CreateUser(t, f.db, entity.RoleCustomer).ID)
	require.NoError(t, f.cart.Add(ctx, other, CartIn{DishID: f.dish.ID}))

	require.NoError(t, f.cart.Clear(ctx, f.customer))
	assert.Empty(t, f.cartItems(t))

	left, err := f.cart.List(ctx, other)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
