package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput carries the parameters for converting a cart into an order.
type CheckoutInput struct {
	CartID          uuid.UUID
	AddressID       uuid.UUID
	PaymentMethodID *uuid.UUID // Optional; an order may be created without one.
	ShippingMethod  string
	Note            string
	PromotionIDs    []uuid.UUID // Optional promotions applied within the checkout transaction.
}

// CheckoutUsecase defines the interface for the cart-to-order conversion.
type CheckoutUsecase interface {
	// CreateFromCart converts an active cart into an order: validates cart
	// state and address ownership, snapshots the selected lines, applies any
	// requested promotions, computes totals, persists the order with its
	// details and initial timeline event, and marks the cart converted.
	// The whole sequence is atomic; any failure leaves no partial order.
	CreateFromCart(ctx context.Context, input CheckoutInput) (*entity.Order, error)
}
