package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// promotionRepository implements the repository.PromotionRepository interface.
type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository is the constructor for promotionRepository.
func NewPromotionRepository(db *gorm.DB) repository.PromotionRepository {
	return &promotionRepository{
		db: db,
	}
}

// CreatePromotion persists a new promotion rule.
func (repo *promotionRepository) CreatePromotion(ctx context.Context, promotion *entity.Promotion) error {
	promotionM := fromPromotionDomain(promotion)

	if err := repo.db.WithContext(ctx).Create(promotionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create promotion")
	}

	promotion.ID = promotionM.ID
	promotion.CreatedAt = promotionM.CreatedAt
	promotion.UpdatedAt = promotionM.UpdatedAt

	return nil
}

// FindPromotionByID retrieves a promotion by its unique ID.
func (repo *promotionRepository) FindPromotionByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	var promotionM model.PromotionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&promotionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find promotion by ID")
	}

	return toPromotionDomain(&promotionM), nil
}

// CreateOrderPromotion records an application of a promotion to an order.
// The unique pair index turns a second application into ErrDuplicateOrderPromotion.
func (repo *promotionRepository) CreateOrderPromotion(ctx context.Context, op *entity.OrderPromotion) error {
	opM := fromOrderPromotionDomain(op)

	if err := repo.db.WithContext(ctx).Create(opM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateOrderPromotion
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPromotionNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order promotion")
	}

	op.ID = opM.ID
	op.CreatedAt = opM.CreatedAt

	return nil
}

// FindOrderPromotion retrieves the application for an (order, promotion) pair.
func (repo *promotionRepository) FindOrderPromotion(ctx context.Context, orderID, promotionID uuid.UUID) (*entity.OrderPromotion, error) {
	var opM model.OrderPromotionModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ? AND promotion_id = ?", orderID, promotionID).
		First(&opM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find order promotion")
	}

	return toOrderPromotionDomain(&opM), nil
}

// FindOrderPromotionsByOrder retrieves all promotions applied to an order.
func (repo *promotionRepository) FindOrderPromotionsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderPromotion, error) {
	var opMs []*model.OrderPromotionModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&opMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find order promotions by order")
	}

	ops := make([]*entity.OrderPromotion, 0, len(opMs))
	for _, opM := range opMs {
		ops = append(ops, toOrderPromotionDomain(opM))
	}

	return ops, nil
}

// CountOrderPromotionsByPromotion counts how many orders a promotion has been
// applied to, for usage-limit enforcement.
func (repo *promotionRepository) CountOrderPromotionsByPromotion(ctx context.Context, promotionID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderPromotionModel{}).
		Where("promotion_id = ?", promotionID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count order promotions by promotion")
	}

	return count, nil
}

// CreateProductPromotion records a promotion scoped to a product. The unique
// pair index turns a second scope into ErrDuplicateProductPromotion.
func (repo *promotionRepository) CreateProductPromotion(ctx context.Context, pp *entity.ProductPromotion) error {
	ppM := fromProductPromotionDomain(pp)

	if err := repo.db.WithContext(ctx).Create(ppM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateProductPromotion
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPromotionNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product promotion")
	}

	pp.ID = ppM.ID
	pp.CreatedAt = ppM.CreatedAt
	pp.UpdatedAt = ppM.UpdatedAt

	return nil
}

// FindProductPromotion retrieves the scope for a (product, promotion) pair.
func (repo *promotionRepository) FindProductPromotion(ctx context.Context, productID, promotionID uuid.UUID) (*entity.ProductPromotion, error) {
	var ppM model.ProductPromotionModel

	if err := repo.db.WithContext(ctx).
		Where("product_id = ? AND promotion_id = ?", productID, promotionID).
		First(&ppM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find product promotion")
	}

	return toProductPromotionDomain(&ppM), nil
}

// FindProductPromotionsByProduct retrieves all promotion scopes of a product.
func (repo *promotionRepository) FindProductPromotionsByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.ProductPromotion, error) {
	var ppMs []*model.ProductPromotionModel

	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&ppMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find product promotions by product")
	}

	pps := make([]*entity.ProductPromotion, 0, len(ppMs))
	for _, ppM := range ppMs {
		pps = append(pps, toProductPromotionDomain(ppM))
	}

	return pps, nil
}

// FindProductPromotionsByPromotion retrieves all product scopes of a promotion.
func (repo *promotionRepository) FindProductPromotionsByPromotion(ctx context.Context, promotionID uuid.UUID) ([]*entity.ProductPromotion, error) {
	var ppMs []*model.ProductPromotionModel

	if err := repo.db.WithContext(ctx).
		Where("promotion_id = ?", promotionID).
		Order("created_at ASC").
		Find(&ppMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find product promotions by promotion")
	}

	pps := make([]*entity.ProductPromotion, 0, len(ppMs))
	for _, ppM := range ppMs {
		pps = append(pps, toProductPromotionDomain(ppM))
	}

	return pps, nil
}

// fromPromotionDomain maps a domain promotion to its persistence model.
func fromPromotionDomain(promotion *entity.Promotion) *model.PromotionModel {
	return &model.PromotionModel{
		ID:            promotion.ID,
		Name:          promotion.Name,
		DiscountType:  promotion.DiscountType.String(),
		DiscountValue: promotion.DiscountValue,
		StartDate:     promotion.StartDate,
		EndDate:       promotion.EndDate,
		Status:        promotion.Status.String(),
		UsageLimit:    promotion.UsageLimit,
		CreatedAt:     promotion.CreatedAt,
		UpdatedAt:     promotion.UpdatedAt,
	}
}

// toPromotionDomain maps a persistence model back to a pure domain promotion.
func toPromotionDomain(promotionM *model.PromotionModel) *entity.Promotion {
	return &entity.Promotion{
		ID:            promotionM.ID,
		Name:          promotionM.Name,
		DiscountType:  entity.DiscountType(promotionM.DiscountType),
		DiscountValue: promotionM.DiscountValue,
		StartDate:     promotionM.StartDate,
		EndDate:       promotionM.EndDate,
		Status:        entity.PromotionStatus(promotionM.Status),
		UsageLimit:    promotionM.UsageLimit,
		CreatedAt:     promotionM.CreatedAt,
		UpdatedAt:     promotionM.UpdatedAt,
	}
}

// fromOrderPromotionDomain maps a domain application to its persistence model.
func fromOrderPromotionDomain(op *entity.OrderPromotion) *model.OrderPromotionModel {
	return &model.OrderPromotionModel{
		ID:             op.ID,
		OrderID:        op.OrderID,
		PromotionID:    op.PromotionID,
		DiscountAmount: op.DiscountAmount,
		CreatedAt:      op.CreatedAt,
	}
}

// toOrderPromotionDomain maps a persistence model back to a pure domain application.
func toOrderPromotionDomain(opM *model.OrderPromotionModel) *entity.OrderPromotion {
	return &entity.OrderPromotion{
		ID:             opM.ID,
		OrderID:        opM.OrderID,
		PromotionID:    opM.PromotionID,
		DiscountAmount: opM.DiscountAmount,
		CreatedAt:      opM.CreatedAt,
	}
}

// fromProductPromotionDomain maps a domain product scope to its persistence model.
func fromProductPromotionDomain(pp *entity.ProductPromotion) *model.ProductPromotionModel {
	return &model.ProductPromotionModel{
		ID:          pp.ID,
		ProductID:   pp.ProductID,
		PromotionID: pp.PromotionID,
		StartDate:   pp.StartDate,
		EndDate:     pp.EndDate,
		Status:      pp.Status.String(),
		CreatedAt:   pp.CreatedAt,
		UpdatedAt:   pp.UpdatedAt,
	}
}

// toProductPromotionDomain maps a persistence model back to a pure domain product scope.
func toProductPromotionDomain(ppM *model.ProductPromotionModel) *entity.ProductPromotion {
	return &entity.ProductPromotion{
		ID:          ppM.ID,
		ProductID:   ppM.ProductID,
		PromotionID: ppM.PromotionID,
		StartDate:   ppM.StartDate,
		EndDate:     ppM.EndDate,
		Status:      entity.PromotionStatus(ppM.Status),
		CreatedAt:   ppM.CreatedAt,
		UpdatedAt:   ppM.UpdatedAt,
	}
}
