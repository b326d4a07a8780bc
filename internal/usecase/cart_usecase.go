// Package usecase defines the application-layer interfaces consumed by the
// delivery layer and implemented under impl.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartView bundles a cart with its lines for read endpoints.
type CartView struct {
	Cart  *entity.Cart
	Items []*entity.CartItem
}

// CartUsecase defines the interface for cart management use cases.
// Every mutating operation recomputes and persists the cart total before
// returning, so Cart.TotalAmount is always consistent with its lines.
type CartUsecase interface {
	// GetOrCreateActiveCart returns the customer's active cart, creating one
	// when none exists. At most one active cart exists per customer.
	GetOrCreateActiveCart(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error)

	// GetCart retrieves a cart with its lines.
	GetCart(ctx context.Context, cartID uuid.UUID) (*CartView, error)

	// AddItem adds a product to the cart, snapshotting the current product
	// price. If a line for the product already exists its quantity is
	// incremented and the original snapshot price is kept.
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*entity.CartItem, error)

	// UpdateItemQuantity sets a line's quantity; quantity must be positive.
	UpdateItemQuantity(ctx context.Context, cartItemID uuid.UUID, quantity int) error

	// RemoveItem deletes a cart line.
	RemoveItem(ctx context.Context, cartItemID uuid.UUID) error

	// UpdateItemSelection toggles a line's inclusion in totals and checkout
	// without deleting the row.
	UpdateItemSelection(ctx context.Context, cartItemID uuid.UUID, isSelected bool) error

	// CalculateTotal recomputes the cart total from selected lines, persists
	// it and returns the sum.
	CalculateTotal(ctx context.Context, cartID uuid.UUID) (decimal.Decimal, error)

	// ClearCart deletes all lines and resets the total to zero.
	ClearCart(ctx context.Context, cartID uuid.UUID) error
}
