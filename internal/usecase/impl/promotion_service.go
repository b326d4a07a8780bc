package impl

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type promotionService struct {
	promotionRepo repository.PromotionRepository
	orderRepo     repository.OrderRepository
	txManager     repository.TransactionManager
	clock         service.Clock
}

// PromotionServiceParams holds dependencies for PromotionService, injected by Fx.
type PromotionServiceParams struct {
	fx.In

	PromotionRepo repository.PromotionRepository
	OrderRepo     repository.OrderRepository
	TxManager     repository.TransactionManager
	Clock         service.Clock
}

// NewPromotionService creates a new promotion service instance
func NewPromotionService(params PromotionServiceParams) usecase.PromotionUsecase {
	return &promotionService{
		promotionRepo: params.PromotionRepo,
		orderRepo:     params.OrderRepo,
		txManager:     params.TxManager,
		clock:         params.Clock,
	}
}

// CreatePromotion persists a new promotion rule after validating its discount
// value and window.
func (srv *promotionService) CreatePromotion(ctx context.Context, input usecase.CreatePromotionInput) (*entity.Promotion, error) {
	if err := validateDiscount(input.DiscountType, input.DiscountValue); err != nil {
		return nil, err
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, domainerrors.ErrInvalidPromotionWindow
	}

	now := srv.clock.Now()
	promotion := &entity.Promotion{
		ID:            uuid.New(),
		Name:          input.Name,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        entity.PromotionStatusActive,
		UsageLimit:    input.UsageLimit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := srv.promotionRepo.CreatePromotion(ctx, promotion); err != nil {
		return nil, errors.Wrap(err, "failed to create promotion")
	}

	return promotion, nil
}

// GetPromotion retrieves a promotion by ID.
func (srv *promotionService) GetPromotion(ctx context.Context, promotionID uuid.UUID) (*entity.Promotion, error) {
	promotion, err := srv.promotionRepo.FindPromotionByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, domainerrors.ErrPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find promotion")
	}

	return promotion, nil
}

// ApplyToOrder applies a promotion to an order inside one transaction, so
// the applicability checks and the write cannot interleave with another
// application of the same promotion.
func (srv *promotionService) ApplyToOrder(ctx context.Context, orderID, promotionID uuid.UUID) (*entity.OrderPromotion, error) {
	var applied *entity.OrderPromotion
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()
		order, err := orderRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}

		details, err := orderRepo.FindDetailsByOrder(ctx, orderID)
		if err != nil {
			return errors.Wrap(err, "failed to find order details")
		}

		applied, err = applyPromotionToOrder(ctx, repoFactory.NewPromotionRepository(), order, details, promotionID, srv.clock.Now())

		return err
	})
	if err != nil {
		return nil, err
	}

	return applied, nil
}

// ApplyToProduct scopes a promotion to a product with its own window.
func (srv *promotionService) ApplyToProduct(ctx context.Context, input usecase.ApplyToProductInput) (*entity.ProductPromotion, error) {
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, domainerrors.ErrInvalidPromotionWindow
	}

	var applied *entity.ProductPromotion
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewProductRepository().FindProductByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		promotionRepo := repoFactory.NewPromotionRepository()
		if _, err := promotionRepo.FindPromotionByID(ctx, input.PromotionID); err != nil {
			if errors.Is(err, repository.ErrPromotionNotFound) {
				return domainerrors.ErrPromotionNotFound
			}

			return errors.Wrap(err, "failed to find promotion")
		}

		now := srv.clock.Now()
		productPromotion := &entity.ProductPromotion{
			ID:          uuid.New(),
			ProductID:   input.ProductID,
			PromotionID: input.PromotionID,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
			Status:      entity.PromotionStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := promotionRepo.CreateProductPromotion(ctx, productPromotion); err != nil {
			if errors.Is(err, repository.ErrDuplicateProductPromotion) {
				return domainerrors.ErrPromotionAlreadyApplied
			}

			return errors.Wrap(err, "failed to create product promotion")
		}
		applied = productPromotion

		return nil
	})
	if err != nil {
		return nil, err
	}

	return applied, nil
}

// CalculateOrderDiscount computes the discount a promotion would produce for
// an order without persisting anything.
func (srv *promotionService) CalculateOrderDiscount(ctx context.Context, orderID, promotionID uuid.UUID) (decimal.Decimal, error) {
	order, err := srv.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return decimal.Zero, domainerrors.ErrOrderNotFound
		}

		return decimal.Zero, errors.Wrap(err, "failed to find order")
	}

	promotion, err := srv.promotionRepo.FindPromotionByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return decimal.Zero, domainerrors.ErrPromotionNotFound
		}

		return decimal.Zero, errors.Wrap(err, "failed to find promotion")
	}

	return calculateOrderDiscount(order, promotion)
}

// validateDiscount checks the value range allowed for each discount type.
func validateDiscount(discountType entity.DiscountType, value decimal.Decimal) error {
	switch discountType {
	case entity.DiscountTypePercentage:
		if value.IsNegative() || value.GreaterThan(oneHundred) {
			return domainerrors.ErrInvalidDiscountValue.WrapMessage("percentage must be between 0 and 100")
		}
	case entity.DiscountTypeFixedAmount:
		if value.IsNegative() {
			return domainerrors.ErrInvalidDiscountValue.WrapMessage("fixed amount must not be negative")
		}
	case entity.DiscountTypeFreeShipping:
		// The value is ignored; the discount equals the shipping fee.
	default:
		return domainerrors.ErrInvalidDiscountType.WrapMessage(discountType.String())
	}

	return nil
}
