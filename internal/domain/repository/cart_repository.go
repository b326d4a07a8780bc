// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartNotFound is returned when a cart is not found.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a cart item is not found.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrDuplicateActiveCart is returned when creating a second active cart
	// for the same customer.
	ErrDuplicateActiveCart = errors.New("customer already has an active cart")
)

// CartRepository defines the interface for cart-related database operations.
type CartRepository interface {
	// CreateCart persists a new cart. The store enforces the one-active-cart
	// uniqueness constraint and returns ErrDuplicateActiveCart on violation.
	CreateCart(ctx context.Context, cart *entity.Cart) error

	// FindCartByID retrieves a cart by its unique ID.
	FindCartByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)

	// FindActiveCartByCustomer retrieves the customer's single active cart.
	FindActiveCartByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error)

	// UpdateCartStatus updates the lifecycle status of a cart.
	UpdateCartStatus(ctx context.Context, id uuid.UUID, status entity.CartStatus) error

	// UpdateCartTotal persists the recomputed cart total.
	UpdateCartTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error

	// CreateCartItem persists a new cart line.
	CreateCartItem(ctx context.Context, item *entity.CartItem) error

	// FindCartItemByID retrieves a cart line by its unique ID.
	FindCartItemByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error)

	// FindItemsByCart retrieves all lines of a cart.
	FindItemsByCart(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error)

	// FindSelectedItemsByCart retrieves the lines included in totals and checkout.
	FindSelectedItemsByCart(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error)

	// FindItemByCartAndProductForUpdate retrieves the line for a product in a
	// cart, locking the row so a concurrent quantity increment cannot be lost.
	FindItemByCartAndProductForUpdate(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error)

	// UpdateItemQuantity sets the quantity of a cart line.
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error

	// UpdateItemSelection toggles a line's inclusion in totals without deleting it.
	UpdateItemSelection(ctx context.Context, itemID uuid.UUID, isSelected bool) error

	// DeleteCartItem removes a cart line.
	DeleteCartItem(ctx context.Context, itemID uuid.UUID) error

	// DeleteItemsByCart removes all lines of a cart.
	DeleteItemsByCart(ctx context.Context, cartID uuid.UUID) error
}
