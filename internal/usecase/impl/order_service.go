package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultTimelineDescriptions supplies the audit text for each enumerated
// status. Timeline events may also carry free text from other sources.
var defaultTimelineDescriptions = map[entity.OrderStatus]string{
	entity.OrderStatusNew:                 "Order created",
	entity.OrderStatusPending:             "Order pending confirmation",
	entity.OrderStatusOrderPlaced:         "Order placed",
	entity.OrderStatusPaymentVerification: "Verifying payment",
	entity.OrderStatusPaymentConfirmed:    "Payment confirmed",
	entity.OrderStatusPacking:             "Packing order",
	entity.OrderStatusShipped:             "Order shipped",
	entity.OrderStatusInTransit:           "Order in transit",
	entity.OrderStatusOutForDelivery:      "Out for delivery",
	entity.OrderStatusDelivered:           "Order delivered",
	entity.OrderStatusCancelled:           "Order cancelled",
	entity.OrderStatusOnHold:              "Order on hold",
}

var defaultTimelineIcons = map[entity.OrderStatus]string{
	entity.OrderStatusDelivered: "check-circle",
	entity.OrderStatusCancelled: "x-circle",
	entity.OrderStatusOnHold:    "pause-circle",
	entity.OrderStatusShipped:   "truck",
}

type orderService struct {
	orderRepo repository.OrderRepository
	txManager repository.TransactionManager
	publisher service.OrderEventPublisher
	clock     service.Clock
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	TxManager repository.TransactionManager
	Publisher service.OrderEventPublisher
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo: params.OrderRepo,
		txManager: params.TxManager,
		publisher: params.Publisher,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

// GetOrder retrieves an order with its line snapshots.
func (srv *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*usecase.OrderView, error) {
	order, err := srv.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	details, err := srv.orderRepo.FindDetailsByOrder(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order details")
	}

	return &usecase.OrderView{Order: order, Details: details}, nil
}

// ListOrdersByCustomer retrieves a customer's orders, newest first.
func (srv *orderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by customer")
	}

	return orders, nil
}

// UpdateStatus applies a status transition. The order row is locked for the
// whole transaction so concurrent transitions serialize; the status write,
// the timeline event and (on first delivery) the revenue contribution commit
// or roll back together.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus) (*entity.Order, error) {
	var updated *entity.Order
	var previous entity.OrderStatus
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindOrderByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order for update")
		}
		previous = order.Status

		// Existence is checked before the status value, so a bad status on a
		// missing order reports the missing order.
		if !newStatus.IsValid() {
			return domainerrors.ErrInvalidOrderStatus.WrapMessage(newStatus.String())
		}

		if !order.Status.CanTransitionTo(newStatus, order.HeldFrom) {
			return domainerrors.ErrOrderTransitionNotAllowed.
				WrapMessage(order.Status.String() + " -> " + newStatus.String())
		}

		// Remember where a hold came from so the order can resume there.
		heldFrom := entity.OrderStatus("")
		if newStatus == entity.OrderStatusOnHold {
			heldFrom = order.Status
		}

		if err := orderRepo.UpdateOrderStatus(ctx, orderID, newStatus, heldFrom); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		now := srv.clock.Now()
		event := &entity.OrderTimelineEvent{
			ID:          uuid.New(),
			OrderID:     orderID,
			Status:      newStatus.String(),
			Description: defaultTimelineDescriptions[newStatus],
			Icon:        defaultTimelineIcons[newStatus],
			CreatedAt:   now,
		}
		if err := orderRepo.CreateTimelineEvent(ctx, event); err != nil {
			return errors.Wrap(err, "failed to append timeline event")
		}

		// First arrival into delivered records the order's revenue
		// contribution; RevenueRecordedAt guards against double-counting.
		if newStatus == entity.OrderStatusDelivered && order.RevenueRecordedAt == nil {
			if err := recordOrderRevenue(ctx, repoFactory, order, now); err != nil {
				return err
			}
			if err := orderRepo.MarkRevenueRecorded(ctx, orderID, now); err != nil {
				return errors.Wrap(err, "failed to mark revenue recorded")
			}
			order.RevenueRecordedAt = &now
		}

		order.Status = newStatus
		order.HeldFrom = heldFrom
		order.UpdatedAt = now
		updated = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.publishStatusEvent(ctx, updated, previous)

	return updated, nil
}

// CancelOrder transitions the order to cancelled. A delivered order cannot
// be cancelled; the transition table rejects it like any other terminal state.
func (srv *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	return srv.UpdateStatus(ctx, orderID, entity.OrderStatusCancelled)
}

// GetTimeline retrieves the order's timeline events, newest first.
func (srv *orderService) GetTimeline(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderTimelineEvent, error) {
	if _, err := srv.orderRepo.FindOrderByID(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	events, err := srv.orderRepo.FindTimelineByOrder(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order timeline")
	}

	return events, nil
}

// publishStatusEvent emits a committed transition to the event pipeline.
// Publishing is best effort; the transition itself has already committed.
func (srv *orderService) publishStatusEvent(ctx context.Context, order *entity.Order, previous entity.OrderStatus) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderStatusEvent{
		OrderID:        order.ID.String(),
		CustomerID:     order.CustomerID.String(),
		PreviousStatus: previous.String(),
		NewStatus:      order.Status.String(),
		OccurredAt:     order.UpdatedAt,
	}
	if err := srv.publisher.PublishOrderStatusEvent(ctx, event); err != nil {
		srv.logger.WarnContext(ctx, "failed to publish order status event",
			slog.String("orderId", order.ID.String()),
			slog.String("newStatus", order.Status.String()),
			slog.String("error", err.Error()),
		)
	}
}
