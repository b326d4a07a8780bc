package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder persists a new order.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("invalid order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindOrderByID retrieves an order by its unique ID.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrderByIDForUpdate retrieves an order and locks the row for the
// duration of the surrounding transaction. Status transitions and the
// revenue guard read through this to serialize concurrent updates.
func (repo *orderRepository) FindOrderByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order for update")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrdersByCustomer retrieves a customer's orders, newest first.
func (repo *orderRepository) FindOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by customer")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateOrderStatus persists a status change together with the held-from
// marker (empty when the order is not on hold).
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, heldFrom entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":    status.String(),
			"held_from": heldFrom.String(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// MarkRevenueRecorded stamps the order as aggregated into revenue reports.
func (repo *orderRepository) MarkRevenueRecorded(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("revenue_recorded_at", at)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark revenue recorded")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// CreateOrderDetails persists the immutable line-item snapshots.
func (repo *orderRepository) CreateOrderDetails(ctx context.Context, details []*entity.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}

	detailMs := make([]*model.OrderDetailModel, 0, len(details))
	for _, detail := range details {
		detailMs = append(detailMs, fromOrderDetailDomain(detail))
	}

	if err := repo.db.WithContext(ctx).Create(&detailMs).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidQuantity.WrapMessage("quantity must be positive")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order details")
	}

	for i, detailM := range detailMs {
		details[i].ID = detailM.ID
		details[i].CreatedAt = detailM.CreatedAt
	}

	return nil
}

// FindDetailsByOrder retrieves the line-item snapshots of an order.
func (repo *orderRepository) FindDetailsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderDetail, error) {
	var detailMs []*model.OrderDetailModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&detailMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find details by order")
	}

	details := make([]*entity.OrderDetail, 0, len(detailMs))
	for _, detailM := range detailMs {
		details = append(details, toOrderDetailDomain(detailM))
	}

	return details, nil
}

// CreateTimelineEvent appends an audit entry to the order's timeline.
func (repo *orderRepository) CreateTimelineEvent(ctx context.Context, event *entity.OrderTimelineEvent) error {
	eventM := fromOrderTimelineEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create timeline event")
	}

	event.ID = eventM.ID
	event.CreatedAt = eventM.CreatedAt

	return nil
}

// FindTimelineByOrder retrieves the order's timeline, newest first.
func (repo *orderRepository) FindTimelineByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderTimelineEvent, error) {
	var eventMs []*model.OrderTimelineEventModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&eventMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find timeline by order")
	}

	events := make([]*entity.OrderTimelineEvent, 0, len(eventMs))
	for _, eventM := range eventMs {
		events = append(events, toOrderTimelineEventDomain(eventM))
	}

	return events, nil
}

// fromOrderDomain maps a domain order to its persistence model.
func fromOrderDomain(order *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:                    order.ID,
		CustomerID:            order.CustomerID,
		CartID:                order.CartID,
		Status:                order.Status.String(),
		HeldFrom:              order.HeldFrom.String(),
		TotalAmount:           order.TotalAmount,
		ShippingFee:           order.ShippingFee,
		AddressID:             order.AddressID,
		PaymentMethodID:       order.PaymentMethodID,
		ShippingMethod:        order.ShippingMethod,
		Note:                  order.Note,
		TrackingNumber:        order.TrackingNumber,
		EstimatedDeliveryDate: order.EstimatedDeliveryDate,
		RevenueRecordedAt:     order.RevenueRecordedAt,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
	}
}

// toOrderDomain maps a persistence model back to a pure domain order.
func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	return &entity.Order{
		ID:                    orderM.ID,
		CustomerID:            orderM.CustomerID,
		CartID:                orderM.CartID,
		Status:                entity.OrderStatus(orderM.Status),
		HeldFrom:              entity.OrderStatus(orderM.HeldFrom),
		TotalAmount:           orderM.TotalAmount,
		ShippingFee:           orderM.ShippingFee,
		AddressID:             orderM.AddressID,
		PaymentMethodID:       orderM.PaymentMethodID,
		ShippingMethod:        orderM.ShippingMethod,
		Note:                  orderM.Note,
		TrackingNumber:        orderM.TrackingNumber,
		EstimatedDeliveryDate: orderM.EstimatedDeliveryDate,
		RevenueRecordedAt:     orderM.RevenueRecordedAt,
		CreatedAt:             orderM.CreatedAt,
		UpdatedAt:             orderM.UpdatedAt,
	}
}

// fromOrderDetailDomain maps a domain line snapshot to its persistence model.
func fromOrderDetailDomain(detail *entity.OrderDetail) *model.OrderDetailModel {
	return &model.OrderDetailModel{
		ID:        detail.ID,
		OrderID:   detail.OrderID,
		ProductID: detail.ProductID,
		Quantity:  detail.Quantity,
		UnitPrice: detail.UnitPrice,
		CreatedAt: detail.CreatedAt,
	}
}

// toOrderDetailDomain maps a persistence model back to a pure domain line snapshot.
func toOrderDetailDomain(detailM *model.OrderDetailModel) *entity.OrderDetail {
	return &entity.OrderDetail{
		ID:        detailM.ID,
		OrderID:   detailM.OrderID,
		ProductID: detailM.ProductID,
		Quantity:  detailM.Quantity,
		UnitPrice: detailM.UnitPrice,
		CreatedAt: detailM.CreatedAt,
	}
}

// fromOrderTimelineEventDomain maps a domain timeline event to its persistence model.
func fromOrderTimelineEventDomain(event *entity.OrderTimelineEvent) *model.OrderTimelineEventModel {
	return &model.OrderTimelineEventModel{
		ID:          event.ID,
		OrderID:     event.OrderID,
		Status:      event.Status,
		Description: event.Description,
		Icon:        event.Icon,
		CreatedAt:   event.CreatedAt,
	}
}

// toOrderTimelineEventDomain maps a persistence model back to a pure domain timeline event.
func toOrderTimelineEventDomain(eventM *model.OrderTimelineEventModel) *entity.OrderTimelineEvent {
	return &entity.OrderTimelineEvent{
		ID:          eventM.ID,
		OrderID:     eventM.OrderID,
		Status:      eventM.Status,
		Description: eventM.Description,
		Icon:        eventM.Icon,
		CreatedAt:   eventM.CreatedAt,
	}
}
