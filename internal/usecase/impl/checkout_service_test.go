package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutServiceForTest(store *fakeStore) (usecase.CheckoutUsecase, *recordingPublisher, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	publisher := &recordingPublisher{}
	cfg := &config.Config{
		Checkout: &config.CheckoutConfig{
			ShippingFees: map[string]string{
				"standard": "15.00",
				"express":  "45.00",
			},
			EstimatedDeliveryDays: 5,
		},
	}
	service := NewCheckoutService(CheckoutServiceParams{
		TxManager: &fakeTxManager{store: store},
		Publisher: publisher,
		Clock:     clock,
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, publisher, clock
}

func seedAddress(store *fakeStore, customerID uuid.UUID) *entity.Address {
	address := &entity.Address{
		ID:         uuid.New(),
		CustomerID: customerID,
		Recipient:  "Alex Chen",
		Line1:      "1 Main St",
	}
	store.addresses[address.ID] = address

	return address
}

func seedCheckoutCart(t *testing.T, store *fakeStore) (*entity.Cart, *entity.CartItem) {
	t.Helper()

	cart := seedActiveCart(store, uuid.New())
	productA := seedProduct(store, "50.00")
	productB := seedProduct(store, "30.00")
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	selected := &entity.CartItem{
		ID:         uuid.New(),
		CartID:     cart.ID,
		ProductID:  productA.ID,
		Quantity:   2,
		UnitPrice:  decimal.RequireFromString("50.00"),
		IsSelected: true,
		CreatedAt:  now,
	}
	unselected := &entity.CartItem{
		ID:         uuid.New(),
		CartID:     cart.ID,
		ProductID:  productB.ID,
		Quantity:   1,
		UnitPrice:  decimal.RequireFromString("30.00"),
		IsSelected: false,
		CreatedAt:  now.Add(time.Minute),
	}
	store.cartItems[selected.ID] = selected
	store.cartItems[unselected.ID] = unselected
	cart.TotalAmount = decimal.RequireFromString("100.00")

	return cart, selected
}

func TestCheckoutService_CreateFromCart(t *testing.T) {
	store := newFakeStore()
	service, publisher, clock := newCheckoutServiceForTest(store)
	ctx := context.Background()
	cart, selected := seedCheckoutCart(t, store)
	address := seedAddress(store, cart.CustomerID)

	order, err := service.CreateFromCart(ctx, usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      address.ID,
		ShippingMethod: "standard",
		Note:           "leave at door",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusNew, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("115.00")), "got %s", order.TotalAmount)
	assert.True(t, order.ShippingFee.Equal(decimal.RequireFromString("15.00")))
	assert.Equal(t, cart.CustomerID, order.CustomerID)
	assert.Nil(t, order.PaymentMethodID)
	require.NotNil(t, order.EstimatedDeliveryDate)
	assert.Equal(t, clock.now.AddDate(0, 0, 5), *order.EstimatedDeliveryDate)

	// Only the selected line is snapshotted.
	require.Len(t, store.orderDetails, 1)
	for _, detail := range store.orderDetails {
		assert.Equal(t, selected.ProductID, detail.ProductID)
		assert.Equal(t, 2, detail.Quantity)
		assert.True(t, detail.UnitPrice.Equal(decimal.RequireFromString("50.00")))
	}

	assert.Equal(t, entity.CartStatusConverted, store.carts[cart.ID].Status)
	assert.Len(t, store.timelineEvents, 1)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, order.ID.String(), publisher.events[0].OrderID)
	assert.Equal(t, entity.OrderStatusNew.String(), publisher.events[0].NewStatus)
}

func TestCheckoutService_CreateFromCart_SnapshotIgnoresLaterPriceChange(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newCheckoutServiceForTest(store)
	ctx := context.Background()
	cart, selected := seedCheckoutCart(t, store)
	address := seedAddress(store, cart.CustomerID)

	// Price change after add-to-cart must not affect the order snapshot.
	store.products[selected.ProductID].Price = decimal.RequireFromString("99.00")

	order, err := service.CreateFromCart(ctx, usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      address.ID,
		ShippingMethod: "standard",
	})
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("115.00")))
}

func TestCheckoutService_CreateFromCart_EmptyCartRollsBack(t *testing.T) {
	store := newFakeStore()
	service, publisher, _ := newCheckoutServiceForTest(store)
	ctx := context.Background()
	cart := seedActiveCart(store, uuid.New())
	address := seedAddress(store, cart.CustomerID)

	_, err := service.CreateFromCart(ctx, usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      address.ID,
		ShippingMethod: "standard",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)

	assert.Empty(t, store.orders)
	assert.Empty(t, store.orderDetails)
	assert.Empty(t, store.timelineEvents)
	assert.Equal(t, entity.CartStatusActive, store.carts[cart.ID].Status)
	assert.Empty(t, publisher.events)
}

func TestCheckoutService_CreateFromCart_CartNotActive(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newCheckoutServiceForTest(store)
	cart, _ := seedCheckoutCart(t, store)
	cart.Status = entity.CartStatusConverted
	address := seedAddress(store, cart.CustomerID)

	_, err := service.CreateFromCart(context.Background(), usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      address.ID,
		ShippingMethod: "standard",
	})
	assert.ErrorIs(t, err, domainerrors.ErrCartNotActive)
}

func TestCheckoutService_CreateFromCart_AddressOwnership(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newCheckoutServiceForTest(store)
	cart, _ := seedCheckoutCart(t, store)
	foreignAddress := seedAddress(store, uuid.New())

	_, err := service.CreateFromCart(context.Background(), usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      foreignAddress.ID,
		ShippingMethod: "standard",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAddressOwnership)
	assert.Empty(t, store.orders)
}

func TestCheckoutService_CreateFromCart_PaymentMethodOwnership(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newCheckoutServiceForTest(store)
	cart, _ := seedCheckoutCart(t, store)
	address := seedAddress(store, cart.CustomerID)
	method := &entity.PaymentMethod{ID: uuid.New(), CustomerID: uuid.New(), Type: "card"}
	store.paymentMethods[method.ID] = method

	_, err := service.CreateFromCart(context.Background(), usecase.CheckoutInput{
		CartID:          cart.ID,
		AddressID:       address.ID,
		PaymentMethodID: &method.ID,
		ShippingMethod:  "standard",
	})
	assert.ErrorIs(t, err, domainerrors.ErrPaymentMethodOwnership)
}

func TestCheckoutService_CreateFromCart_UnknownShippingMethod(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newCheckoutServiceForTest(store)
	cart, _ := seedCheckoutCart(t, store)
	address := seedAddress(store, cart.CustomerID)

	_, err := service.CreateFromCart(context.Background(), usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      address.ID,
		ShippingMethod: "drone",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnknownShippingMethod)
}

func TestCheckoutService_CreateFromCart_AppliesPromotions(t *testing.T) {
	store := newFakeStore()
	service, _, clock := newCheckoutServiceForTest(store)
	ctx := context.Background()
	cart, _ := seedCheckoutCart(t, store)
	address := seedAddress(store, cart.CustomerID)

	promotion := &entity.Promotion{
		ID:            uuid.New(),
		Name:          "summer sale",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: decimal.RequireFromString("10.00"),
		StartDate:     clock.now.AddDate(0, 0, -1),
		Status:        entity.PromotionStatusActive,
	}
	store.promotions[promotion.ID] = promotion

	order, err := service.CreateFromCart(ctx, usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      address.ID,
		ShippingMethod: "standard",
		PromotionIDs:   []uuid.UUID{promotion.ID},
	})
	require.NoError(t, err)

	require.Len(t, store.orderPromotions, 1)
	for _, op := range store.orderPromotions {
		assert.Equal(t, order.ID, op.OrderID)
		// 10% of 115.00.
		assert.True(t, op.DiscountAmount.Equal(decimal.RequireFromString("11.50")), "got %s", op.DiscountAmount)
	}
}

func TestCheckoutService_CreateFromCart_ScopedPromotionWindowClosedRollsBack(t *testing.T) {
	store := newFakeStore()
	service, _, clock := newCheckoutServiceForTest(store)
	cart, selected := seedCheckoutCart(t, store)
	address := seedAddress(store, cart.CustomerID)

	// Active promotion whose product scope for the checked-out product
	// expired yesterday.
	promotion := &entity.Promotion{
		ID:            uuid.New(),
		Name:          "clearance",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: decimal.RequireFromString("10.00"),
		StartDate:     clock.now.AddDate(0, 0, -10),
		Status:        entity.PromotionStatusActive,
	}
	store.promotions[promotion.ID] = promotion
	ended := clock.now.AddDate(0, 0, -1)
	seedProductScope(store, promotion.ID, selected.ProductID, clock.now.AddDate(0, 0, -10), &ended)

	_, err := service.CreateFromCart(context.Background(), usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      address.ID,
		ShippingMethod: "standard",
		PromotionIDs:   []uuid.UUID{promotion.ID},
	})
	assert.ErrorIs(t, err, domainerrors.ErrPromotionNotApplicable)

	assert.Empty(t, store.orders)
	assert.Empty(t, store.orderDetails)
	assert.Empty(t, store.orderPromotions)
	assert.Equal(t, entity.CartStatusActive, store.carts[cart.ID].Status)
}

func TestCheckoutService_CreateFromCart_BadPromotionRollsBackEverything(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newCheckoutServiceForTest(store)
	cart, _ := seedCheckoutCart(t, store)
	address := seedAddress(store, cart.CustomerID)

	_, err := service.CreateFromCart(context.Background(), usecase.CheckoutInput{
		CartID:         cart.ID,
		AddressID:      address.ID,
		ShippingMethod: "standard",
		PromotionIDs:   []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, domainerrors.ErrPromotionNotFound)

	// The order writes preceding the failed promotion must be rolled back.
	assert.Empty(t, store.orders)
	assert.Empty(t, store.orderDetails)
	assert.Empty(t, store.timelineEvents)
	assert.Equal(t, entity.CartStatusActive, store.carts[cart.ID].Status)
}

func TestCheckoutService_CreateFromCart_CartNotFound(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newCheckoutServiceForTest(store)

	_, err := service.CreateFromCart(context.Background(), usecase.CheckoutInput{
		CartID:         uuid.New(),
		AddressID:      uuid.New(),
		ShippingMethod: "standard",
	})
	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}
