package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for promotion persistence.
var (
	// ErrPromotionNotFound is returned when a promotion is not found.
	ErrPromotionNotFound = errors.New("promotion not found")
	// ErrOrderPromotionNotFound is returned when no application exists for an
	// (order, promotion) pair.
	ErrOrderPromotionNotFound = errors.New("order promotion not found")
	// ErrProductPromotionNotFound is returned when no scope exists for a
	// (product, promotion) pair.
	ErrProductPromotionNotFound = errors.New("product promotion not found")
	// ErrDuplicateOrderPromotion is returned when applying a promotion to an
	// order a second time.
	ErrDuplicateOrderPromotion = errors.New("promotion already applied to order")
	// ErrDuplicateProductPromotion is returned when scoping a promotion to a
	// product a second time.
	ErrDuplicateProductPromotion = errors.New("promotion already applied to product")
)

// PromotionRepository defines the interface for promotion-related database
// operations. OrderPromotion rows are written once and never mutated.
type PromotionRepository interface {
	// CreatePromotion persists a new promotion rule.
	CreatePromotion(ctx context.Context, promotion *entity.Promotion) error

	// FindPromotionByID retrieves a promotion by its unique ID.
	FindPromotionByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error)

	// CreateOrderPromotion records an application of a promotion to an order.
	// The store enforces uniqueness of the (order, promotion) pair and
	// returns ErrDuplicateOrderPromotion on violation.
	CreateOrderPromotion(ctx context.Context, op *entity.OrderPromotion) error

	// FindOrderPromotion retrieves the application for an (order, promotion) pair.
	FindOrderPromotion(ctx context.Context, orderID, promotionID uuid.UUID) (*entity.OrderPromotion, error)

	// FindOrderPromotionsByOrder retrieves all promotions applied to an order.
	FindOrderPromotionsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderPromotion, error)

	// CountOrderPromotionsByPromotion counts how many orders a promotion has
	// been applied to, for usage-limit enforcement.
	CountOrderPromotionsByPromotion(ctx context.Context, promotionID uuid.UUID) (int64, error)

	// CreateProductPromotion records a promotion scoped to a product. The
	// store enforces uniqueness of the (product, promotion) pair and returns
	// ErrDuplicateProductPromotion on violation.
	CreateProductPromotion(ctx context.Context, pp *entity.ProductPromotion) error

	// FindProductPromotion retrieves the scope for a (product, promotion) pair.
	FindProductPromotion(ctx context.Context, productID, promotionID uuid.UUID) (*entity.ProductPromotion, error)

	// FindProductPromotionsByProduct retrieves all promotion scopes of a product.
	FindProductPromotionsByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.ProductPromotion, error)

	// FindProductPromotionsByPromotion retrieves all product scopes of a
	// promotion. A promotion with at least one scope row is product-scoped
	// and applies only through a passing scope.
	FindProductPromotionsByPromotion(ctx context.Context, promotionID uuid.UUID) ([]*entity.ProductPromotion, error)
}
