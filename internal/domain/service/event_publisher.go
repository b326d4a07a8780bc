package service

import (
	"context"
	"time"
)

// OrderStatusEvent describes a committed order status transition, published
// for downstream consumers (fulfilment dashboards, notification workers).
type OrderStatusEvent struct {
	RequestID      string    `json:"request_id,omitempty"` // For distributed tracing
	OrderID        string    `json:"order_id"`
	CustomerID     string    `json:"customer_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// OrderEventPublisher defines the interface for publishing order lifecycle
// events to a message queue.
type OrderEventPublisher interface {
	// PublishOrderStatusEvent publishes a status transition for async processing.
	PublishOrderStatusEvent(ctx context.Context, event *OrderStatusEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
