package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderView bundles an order with its line snapshots for read endpoints.
type OrderView struct {
	Order   *entity.Order
	Details []*entity.OrderDetail
}

// OrderUsecase defines the interface for order lifecycle use cases.
type OrderUsecase interface {
	// GetOrder retrieves an order with its line snapshots.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderView, error)

	// ListOrdersByCustomer retrieves a customer's orders, newest first.
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus applies a status transition. The transition table is
	// enforced; every successful change appends exactly one timeline event
	// in the same transaction as the status write. The first transition
	// into delivered also records the order's revenue contribution.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus) (*entity.Order, error)

	// CancelOrder transitions the order to cancelled. Fails on terminal
	// states; a delivered order cannot be cancelled.
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// GetTimeline retrieves the order's timeline events, newest first.
	GetTimeline(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderTimelineEvent, error)
}
