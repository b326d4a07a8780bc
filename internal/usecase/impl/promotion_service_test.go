package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromotionServiceForTest(store *fakeStore) (usecase.PromotionUsecase, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	service := NewPromotionService(PromotionServiceParams{
		PromotionRepo: &fakePromotionRepo{store: store},
		OrderRepo:     &fakeOrderRepo{store: store},
		TxManager:     &fakeTxManager{store: store},
		Clock:         clock,
	})

	return service, clock
}

func seedPromotion(store *fakeStore, clock *fakeClock, discountType entity.DiscountType, value string) *entity.Promotion {
	promotion := &entity.Promotion{
		ID:            uuid.New(),
		Name:          "test promotion",
		DiscountType:  discountType,
		DiscountValue: decimal.RequireFromString(value),
		StartDate:     clock.now.AddDate(0, 0, -1),
		Status:        entity.PromotionStatusActive,
	}
	store.promotions[promotion.ID] = promotion

	return promotion
}

func TestPromotionService_CalculateOrderDiscount_Percentage(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	order.TotalAmount = decimal.RequireFromString("100.00")
	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")

	discount, err := service.CalculateOrderDiscount(context.Background(), order.ID, promotion.ID)
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.RequireFromString("10.00")), "got %s", discount)
}

func TestPromotionService_CalculateOrderDiscount_FixedAmountClamped(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	promotion := seedPromotion(store, clock, entity.DiscountTypeFixedAmount, "500.00")

	// The discount never exceeds the order total.
	discount, err := service.CalculateOrderDiscount(context.Background(), order.ID, promotion.ID)
	require.NoError(t, err)
	assert.True(t, discount.Equal(order.TotalAmount), "got %s", discount)
}

func TestPromotionService_CalculateOrderDiscount_FreeShipping(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	promotion := seedPromotion(store, clock, entity.DiscountTypeFreeShipping, "0")

	discount, err := service.CalculateOrderDiscount(context.Background(), order.ID, promotion.ID)
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.RequireFromString("15.00")))
}

func TestPromotionService_CalculateOrderDiscount_UnknownTypeIsDataError(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	promotion := seedPromotion(store, clock, entity.DiscountType("loyalty_points"), "5.00")

	_, err := service.CalculateOrderDiscount(context.Background(), order.ID, promotion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDiscountType)
}

func TestPromotionService_ApplyToOrder_SecondApplicationConflicts(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	ctx := context.Background()
	order := seedOrder(store, entity.OrderStatusNew)
	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")

	applied, err := service.ApplyToOrder(ctx, order.ID, promotion.ID)
	require.NoError(t, err)
	assert.True(t, applied.DiscountAmount.Equal(decimal.RequireFromString("11.50")))

	_, err = service.ApplyToOrder(ctx, order.ID, promotion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPromotionAlreadyApplied)
	assert.Len(t, store.orderPromotions, 1)
}

func TestPromotionService_ApplyToOrder_UsageLimitReached(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	ctx := context.Background()
	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")
	limit := int64(1)
	promotion.UsageLimit = &limit

	first := seedOrder(store, entity.OrderStatusNew)
	_, err := service.ApplyToOrder(ctx, first.ID, promotion.ID)
	require.NoError(t, err)

	second := seedOrder(store, entity.OrderStatusNew)
	_, err = service.ApplyToOrder(ctx, second.ID, promotion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPromotionUsageLimitReached)
	assert.Len(t, store.orderPromotions, 1)
}

func TestPromotionService_ApplyToOrder_OutsideWindow(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)

	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")
	ended := clock.now.AddDate(0, 0, -1)
	promotion.EndDate = &ended

	_, err := service.ApplyToOrder(context.Background(), order.ID, promotion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPromotionNotApplicable)
}

func TestPromotionService_ApplyToOrder_InactivePromotion(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")
	promotion.Status = entity.PromotionStatusInactive

	_, err := service.ApplyToOrder(context.Background(), order.ID, promotion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPromotionNotApplicable)
}

func seedOrderDetail(store *fakeStore, orderID, productID uuid.UUID) *entity.OrderDetail {
	detail := &entity.OrderDetail{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  1,
		UnitPrice: decimal.RequireFromString("100.00"),
	}
	store.orderDetails[detail.ID] = detail

	return detail
}

func seedProductScope(store *fakeStore, promotionID, productID uuid.UUID, start time.Time, end *time.Time) *entity.ProductPromotion {
	scope := &entity.ProductPromotion{
		ID:          uuid.New(),
		ProductID:   productID,
		PromotionID: promotionID,
		StartDate:   start,
		EndDate:     end,
		Status:      entity.PromotionStatusActive,
	}
	store.productPromotions[scope.ID] = scope

	return scope
}

func TestPromotionService_ApplyToOrder_ProductScopeWindowClosed(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	product := seedProduct(store, "100.00")
	seedOrderDetail(store, order.ID, product.ID)

	// The promotion's own window is open, but its only product scope
	// expired yesterday.
	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")
	ended := clock.now.AddDate(0, 0, -1)
	seedProductScope(store, promotion.ID, product.ID, clock.now.AddDate(0, 0, -10), &ended)

	_, err := service.ApplyToOrder(context.Background(), order.ID, promotion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPromotionNotApplicable)
	assert.Empty(t, store.orderPromotions)
}

func TestPromotionService_ApplyToOrder_ProductScopeWindowOpen(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	product := seedProduct(store, "100.00")
	seedOrderDetail(store, order.ID, product.ID)

	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")
	seedProductScope(store, promotion.ID, product.ID, clock.now.AddDate(0, 0, -1), nil)

	applied, err := service.ApplyToOrder(context.Background(), order.ID, promotion.ID)
	require.NoError(t, err)
	assert.True(t, applied.DiscountAmount.Equal(decimal.RequireFromString("11.50")), "got %s", applied.DiscountAmount)
}

func TestPromotionService_ApplyToOrder_ProductScopeMissesOrder(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	inOrder := seedProduct(store, "100.00")
	seedOrderDetail(store, order.ID, inOrder.ID)

	// The scope targets a product the order does not contain.
	other := seedProduct(store, "40.00")
	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")
	seedProductScope(store, promotion.ID, other.ID, clock.now.AddDate(0, 0, -1), nil)

	_, err := service.ApplyToOrder(context.Background(), order.ID, promotion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPromotionNotApplicable)
	assert.Empty(t, store.orderPromotions)
}

func TestPromotionService_ApplyToOrder_InactiveProductScope(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	order := seedOrder(store, entity.OrderStatusNew)
	product := seedProduct(store, "100.00")
	seedOrderDetail(store, order.ID, product.ID)

	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")
	scope := seedProductScope(store, promotion.ID, product.ID, clock.now.AddDate(0, 0, -1), nil)
	scope.Status = entity.PromotionStatusInactive

	_, err := service.ApplyToOrder(context.Background(), order.ID, promotion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPromotionNotApplicable)
}

func TestPromotionService_ApplyToProduct_DuplicateConflicts(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	ctx := context.Background()
	product := seedProduct(store, "50.00")
	promotion := seedPromotion(store, clock, entity.DiscountTypePercentage, "10.00")

	input := usecase.ApplyToProductInput{
		ProductID:   product.ID,
		PromotionID: promotion.ID,
		StartDate:   clock.now,
	}
	applied, err := service.ApplyToProduct(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, entity.PromotionStatusActive, applied.Status)

	_, err = service.ApplyToProduct(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrPromotionAlreadyApplied)
	assert.Len(t, store.productPromotions, 1)
}

func TestPromotionService_ApplyToProduct_InvalidWindow(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	end := clock.now.AddDate(0, 0, -2)

	_, err := service.ApplyToProduct(context.Background(), usecase.ApplyToProductInput{
		ProductID:   uuid.New(),
		PromotionID: uuid.New(),
		StartDate:   clock.now,
		EndDate:     &end,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPromotionWindow)
}

func TestPromotionService_CreatePromotion_ValidatesDiscountValue(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	ctx := context.Background()

	_, err := service.CreatePromotion(ctx, usecase.CreatePromotionInput{
		Name:          "too generous",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: decimal.RequireFromString("150.00"),
		StartDate:     clock.now,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDiscountValue)

	_, err = service.CreatePromotion(ctx, usecase.CreatePromotionInput{
		Name:          "negative",
		DiscountType:  entity.DiscountTypeFixedAmount,
		DiscountValue: decimal.RequireFromString("-5.00"),
		StartDate:     clock.now,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDiscountValue)

	created, err := service.CreatePromotion(ctx, usecase.CreatePromotionInput{
		Name:          "ten percent",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: decimal.RequireFromString("10.00"),
		StartDate:     clock.now,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PromotionStatusActive, created.Status)
}

func TestPromotionService_CreatePromotion_InvalidWindow(t *testing.T) {
	store := newFakeStore()
	service, clock := newPromotionServiceForTest(store)
	end := clock.now.AddDate(0, 0, -1)

	_, err := service.CreatePromotion(context.Background(), usecase.CreatePromotionInput{
		Name:          "backwards window",
		DiscountType:  entity.DiscountTypeFixedAmount,
		DiscountValue: decimal.RequireFromString("5.00"),
		StartDate:     clock.now,
		EndDate:       &end,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPromotionWindow)
}
