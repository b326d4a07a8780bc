package impl

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// calculateOrderDiscount computes the discount a promotion produces for an
// order. A fixed amount is clamped to the order total so the net total can
// never go negative.
func calculateOrderDiscount(order *entity.Order, promotion *entity.Promotion) (decimal.Decimal, error) {
	switch promotion.DiscountType {
	case entity.DiscountTypePercentage:
		return order.TotalAmount.Mul(promotion.DiscountValue).Div(oneHundred), nil
	case entity.DiscountTypeFixedAmount:
		if promotion.DiscountValue.GreaterThan(order.TotalAmount) {
			return order.TotalAmount, nil
		}

		return promotion.DiscountValue, nil
	case entity.DiscountTypeFreeShipping:
		return order.ShippingFee, nil
	default:
		return decimal.Zero, domainerrors.ErrInvalidDiscountType.WrapMessage(promotion.DiscountType.String())
	}
}

// productScopeApplies reports whether any of the promotion's product scopes
// covers a product in the order and passes its own window at the given
// instant. Promotions without scope rows are order-level and always pass.
func productScopeApplies(scopes []*entity.ProductPromotion, details []*entity.OrderDetail, now time.Time) bool {
	if len(scopes) == 0 {
		return true
	}

	inOrder := make(map[uuid.UUID]struct{}, len(details))
	for _, detail := range details {
		inOrder[detail.ProductID] = struct{}{}
	}

	for _, scope := range scopes {
		if _, ok := inOrder[scope.ProductID]; ok && scope.ApplicableAt(now) {
			return true
		}
	}

	return false
}

// applyPromotionToOrder validates applicability and persists an
// OrderPromotion inside the caller's transaction. Shared between the
// promotion use case and the checkout transaction. Both the promotion's
// window and, for product-scoped promotions, the scope's own window must
// contain now.
func applyPromotionToOrder(ctx context.Context, promotionRepo repository.PromotionRepository, order *entity.Order, details []*entity.OrderDetail, promotionID uuid.UUID, now time.Time) (*entity.OrderPromotion, error) {
	promotion, err := promotionRepo.FindPromotionByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, domainerrors.ErrPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find promotion")
	}

	if !promotion.ApplicableAt(now) {
		return nil, domainerrors.ErrPromotionNotApplicable.WrapMessage(promotion.Name)
	}

	scopes, err := promotionRepo.FindProductPromotionsByPromotion(ctx, promotionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find promotion product scopes")
	}
	if !productScopeApplies(scopes, details, now) {
		return nil, domainerrors.ErrPromotionNotApplicable.WrapMessage(promotion.Name)
	}

	if promotion.UsageLimit != nil {
		count, err := promotionRepo.CountOrderPromotionsByPromotion(ctx, promotionID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count promotion usage")
		}
		if count >= *promotion.UsageLimit {
			return nil, domainerrors.ErrPromotionUsageLimitReached.WrapMessage(promotion.Name)
		}
	}

	discount, err := calculateOrderDiscount(order, promotion)
	if err != nil {
		return nil, err
	}

	orderPromotion := &entity.OrderPromotion{
		ID:             uuid.New(),
		OrderID:        order.ID,
		PromotionID:    promotionID,
		DiscountAmount: discount,
		CreatedAt:      now,
	}
	if err := promotionRepo.CreateOrderPromotion(ctx, orderPromotion); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrderPromotion) {
			return nil, domainerrors.ErrPromotionAlreadyApplied
		}

		return nil, errors.Wrap(err, "failed to create order promotion")
	}

	return orderPromotion, nil
}
