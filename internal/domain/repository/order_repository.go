package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order-related database operations.
// OrderDetail rows are written once at order creation and never mutated;
// timeline events are append-only.
type OrderRepository interface {
	// CreateOrder persists a new order.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves an order by its unique ID.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindOrderByIDForUpdate retrieves an order and locks the row for the
	// duration of the surrounding transaction. Status transitions and the
	// revenue guard read through this to serialize concurrent updates.
	FindOrderByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindOrdersByCustomer retrieves a customer's orders, newest first.
	FindOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)

	// UpdateOrderStatus persists a status change together with the held-from
	// marker (empty when the order is not on hold).
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, heldFrom entity.OrderStatus) error

	// MarkRevenueRecorded stamps the order as aggregated into revenue reports.
	MarkRevenueRecorded(ctx context.Context, id uuid.UUID, at time.Time) error

	// CreateOrderDetails persists the immutable line-item snapshots.
	CreateOrderDetails(ctx context.Context, details []*entity.OrderDetail) error

	// FindDetailsByOrder retrieves the line-item snapshots of an order.
	FindDetailsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderDetail, error)

	// CreateTimelineEvent appends an audit entry to the order's timeline.
	CreateTimelineEvent(ctx context.Context, event *entity.OrderTimelineEvent) error

	// FindTimelineByOrder retrieves the order's timeline, newest first.
	FindTimelineByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderTimelineEvent, error)
}
