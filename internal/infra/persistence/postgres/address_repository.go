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

// addressRepository implements the repository.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{
		db: db,
	}
}

// FindAddressByID retrieves an address by its unique ID.
func (repo *addressRepository) FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by ID")
	}

	return toAddressDomain(&addressM), nil
}

// toAddressDomain maps a persistence model back to a pure domain address.
func toAddressDomain(addressM *model.AddressModel) *entity.Address {
	return &entity.Address{
		ID:         addressM.ID,
		CustomerID: addressM.CustomerID,
		Recipient:  addressM.Recipient,
		Phone:      addressM.Phone,
		Line1:      addressM.Line1,
		Line2:      addressM.Line2,
		City:       addressM.City,
		PostalCode: addressM.PostalCode,
		Country:    addressM.Country,
		IsDefault:  addressM.IsDefault,
		CreatedAt:  addressM.CreatedAt,
		UpdatedAt:  addressM.UpdatedAt,
	}
}
