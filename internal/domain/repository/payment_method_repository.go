package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrPaymentMethodNotFound is returned when a payment method is not found.
var ErrPaymentMethodNotFound = errors.New("payment method not found")

// PaymentMethodRepository defines the interface for payment method lookups.
type PaymentMethodRepository interface {
	// FindPaymentMethodByID retrieves a payment method by its unique ID.
	FindPaymentMethodByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)
}
