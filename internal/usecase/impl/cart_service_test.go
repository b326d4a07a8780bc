package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartServiceForTest(store *fakeStore) (usecase.CartUsecase, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	service := NewCartService(CartServiceParams{
		CartRepo:  &fakeCartRepo{store: store},
		TxManager: &fakeTxManager{store: store},
		Clock:     clock,
	})

	return service, clock
}

func seedActiveCart(store *fakeStore, customerID uuid.UUID) *entity.Cart {
	cart := &entity.Cart{
		ID:          uuid.New(),
		CustomerID:  customerID,
		Status:      entity.CartStatusActive,
		TotalAmount: decimal.Zero,
	}
	store.carts[cart.ID] = cart

	return cart
}

func seedProduct(store *fakeStore, price string) *entity.Product {
	product := &entity.Product{
		ID:       uuid.New(),
		Name:     "test product",
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
	store.products[product.ID] = product

	return product
}

func TestCartService_GetOrCreateActiveCart_CreatesOnce(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)
	ctx := context.Background()
	customerID := uuid.New()

	first, err := service.GetOrCreateActiveCart(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, entity.CartStatusActive, first.Status)

	second, err := service.GetOrCreateActiveCart(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.carts, 1)
}

// blindCartRepo simulates the race where the unique index reports an active
// cart that is already gone by the time the loser re-reads it.
type blindCartRepo struct {
	repository.CartRepository
}

func (r *blindCartRepo) FindActiveCartByCustomer(context.Context, uuid.UUID) (*entity.Cart, error) {
	return nil, repository.ErrCartNotFound
}

func TestCartService_GetOrCreateActiveCart_VanishedWinnerConflicts(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	seedActiveCart(store, customerID)

	clock := &fakeClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	service := NewCartService(CartServiceParams{
		CartRepo:  &blindCartRepo{CartRepository: &fakeCartRepo{store: store}},
		TxManager: &fakeTxManager{store: store},
		Clock:     clock,
	})

	_, err := service.GetOrCreateActiveCart(context.Background(), customerID)
	assert.ErrorIs(t, err, domainerrors.ErrActiveCartExists)
}

func TestCartService_AddItem_SnapshotsPrice(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)
	ctx := context.Background()
	cart := seedActiveCart(store, uuid.New())
	product := seedProduct(store, "50.00")

	item, err := service.AddItem(ctx, cart.ID, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.IsSelected)

	// A later product price change must not re-price the line.
	store.products[product.ID].Price = decimal.RequireFromString("80.00")

	item2, err := service.AddItem(ctx, cart.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, item.ID, item2.ID)
	assert.Equal(t, 5, item2.Quantity)
	assert.True(t, item2.UnitPrice.Equal(decimal.RequireFromString("50.00")))

	assert.True(t, store.carts[cart.ID].TotalAmount.Equal(decimal.RequireFromString("250.00")))
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)

	_, err := service.AddItem(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestCartService_AddItem_CartNotFound(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)

	_, err := service.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)
	cart := seedActiveCart(store, uuid.New())

	_, err := service.AddItem(context.Background(), cart.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddItem_CartNotActive(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)
	cart := seedActiveCart(store, uuid.New())
	cart.Status = entity.CartStatusConverted
	product := seedProduct(store, "10.00")

	_, err := service.AddItem(context.Background(), cart.ID, product.ID, 1)
	assert.ErrorIs(t, err, domainerrors.ErrCartNotActive)
}

func TestCartService_UpdateItemQuantity_InvalidQuantity(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)

	err := service.UpdateItemQuantity(context.Background(), uuid.New(), -1)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestCartService_RemoveItem_NotFound(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)

	err := service.RemoveItem(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_CalculateTotal_SelectedOnly(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)
	ctx := context.Background()
	cart := seedActiveCart(store, uuid.New())
	productA := seedProduct(store, "50.00")
	productB := seedProduct(store, "30.00")

	itemA, err := service.AddItem(ctx, cart.ID, productA.ID, 2)
	require.NoError(t, err)
	itemB, err := service.AddItem(ctx, cart.ID, productB.ID, 1)
	require.NoError(t, err)

	require.NoError(t, service.UpdateItemSelection(ctx, itemB.ID, false))

	total, err := service.CalculateTotal(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("100.00")), "got %s", total)
	assert.True(t, store.carts[cart.ID].TotalAmount.Equal(total))

	// Re-selecting brings the line back into the total.
	require.NoError(t, service.UpdateItemSelection(ctx, itemB.ID, true))
	total, err = service.CalculateTotal(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("130.00")))

	// Removal excludes the line entirely.
	require.NoError(t, service.RemoveItem(ctx, itemA.ID))
	total, err = service.CalculateTotal(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("30.00")))
}

func TestCartService_TotalStaysConsistentAfterEveryMutation(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)
	ctx := context.Background()
	cart := seedActiveCart(store, uuid.New())
	product := seedProduct(store, "12.50")

	item, err := service.AddItem(ctx, cart.ID, product.ID, 4)
	require.NoError(t, err)
	assert.True(t, store.carts[cart.ID].TotalAmount.Equal(decimal.RequireFromString("50.00")))

	require.NoError(t, service.UpdateItemQuantity(ctx, item.ID, 2))
	assert.True(t, store.carts[cart.ID].TotalAmount.Equal(decimal.RequireFromString("25.00")))

	require.NoError(t, service.UpdateItemSelection(ctx, item.ID, false))
	assert.True(t, store.carts[cart.ID].TotalAmount.IsZero())

	require.NoError(t, service.UpdateItemSelection(ctx, item.ID, true))
	assert.True(t, store.carts[cart.ID].TotalAmount.Equal(decimal.RequireFromString("25.00")))
}

func TestCartService_ClearCart(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)
	ctx := context.Background()
	cart := seedActiveCart(store, uuid.New())
	product := seedProduct(store, "9.99")

	_, err := service.AddItem(ctx, cart.ID, product.ID, 3)
	require.NoError(t, err)

	require.NoError(t, service.ClearCart(ctx, cart.ID))
	assert.Empty(t, store.cartItems)
	assert.True(t, store.carts[cart.ID].TotalAmount.IsZero())
}

func TestCartService_GetCart_NotFound(t *testing.T) {
	store := newFakeStore()
	service, _ := newCartServiceForTest(store)

	_, err := service.GetCart(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}
