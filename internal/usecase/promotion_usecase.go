package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePromotionInput carries the parameters for a new promotion rule.
type CreatePromotionInput struct {
	Name          string
	DiscountType  entity.DiscountType
	DiscountValue decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time // Nil means open-ended.
	UsageLimit    *int64     // Nil means uncapped.
}

// ApplyToProductInput scopes a promotion to a product with its own window.
type ApplyToProductInput struct {
	ProductID   uuid.UUID
	PromotionID uuid.UUID
	StartDate   time.Time
	EndDate     *time.Time
}

// PromotionUsecase defines the interface for promotion management and
// discount evaluation use cases.
type PromotionUsecase interface {
	// CreatePromotion persists a new promotion rule after validating its
	// discount value and window.
	CreatePromotion(ctx context.Context, input CreatePromotionInput) (*entity.Promotion, error)

	// GetPromotion retrieves a promotion by ID.
	GetPromotion(ctx context.Context, promotionID uuid.UUID) (*entity.Promotion, error)

	// ApplyToOrder applies a promotion to an order. Fails on duplicate
	// application, exhausted usage limit, or an inapplicable window. On
	// success the computed discount is persisted as an OrderPromotion.
	ApplyToOrder(ctx context.Context, orderID, promotionID uuid.UUID) (*entity.OrderPromotion, error)

	// ApplyToProduct scopes a promotion to a product with its own window.
	// Fails on duplicate application for the (product, promotion) pair.
	ApplyToProduct(ctx context.Context, input ApplyToProductInput) (*entity.ProductPromotion, error)

	// CalculateOrderDiscount computes the discount a promotion would produce
	// for an order without persisting anything.
	CalculateOrderDiscount(ctx context.Context, orderID, promotionID uuid.UUID) (decimal.Decimal, error)
}
