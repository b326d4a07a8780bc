package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// paymentMethodRepository implements the repository.PaymentMethodRepository interface.
type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository is the constructor for paymentMethodRepository.
func NewPaymentMethodRepository(db *gorm.DB) repository.PaymentMethodRepository {
	return &paymentMethodRepository{
		db: db,
	}
}

// FindPaymentMethodByID retrieves a payment method by its unique ID.
func (repo *paymentMethodRepository) FindPaymentMethodByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	var methodM model.PaymentMethodModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&methodM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentMethodNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment method by ID")
	}

	return toPaymentMethodDomain(&methodM), nil
}

// toPaymentMethodDomain maps a persistence model back to a pure domain payment method.
func toPaymentMethodDomain(methodM *model.PaymentMethodModel) *entity.PaymentMethod {
	return &entity.PaymentMethod{
		ID:         methodM.ID,
		CustomerID: methodM.CustomerID,
		Type:       methodM.Type,
		Label:      methodM.Label,
		IsDefault:  methodM.IsDefault,
		CreatedAt:  methodM.CreatedAt,
		UpdatedAt:  methodM.UpdatedAt,
	}
}
