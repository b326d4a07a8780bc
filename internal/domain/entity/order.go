package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is created exactly once from a cart at checkout. Its status is
// mutated only through the order status state machine; line items and
// applied promotions are written at creation and never mutated afterwards.
type Order struct {
	ID                    uuid.UUID       `json:"id"`
	CustomerID            uuid.UUID       `json:"customer_id"`
	CartID                uuid.UUID       `json:"cart_id"`
	Status                OrderStatus     `json:"status"`
	HeldFrom              OrderStatus     `json:"held_from,omitempty"` // Set while on_hold; the state to resume to.
	TotalAmount           decimal.Decimal `json:"total_amount"`        // Line totals plus shipping fee.
	ShippingFee           decimal.Decimal `json:"shipping_fee"`
	AddressID             uuid.UUID       `json:"address_id"`
	PaymentMethodID       *uuid.UUID      `json:"payment_method_id,omitempty"`
	ShippingMethod        string          `json:"shipping_method"`
	Note                  string          `json:"note,omitempty"`
	TrackingNumber        string          `json:"tracking_number,omitempty"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date,omitempty"`
	RevenueRecordedAt     *time.Time      `json:"revenue_recorded_at,omitempty"` // Exactly-once guard for revenue aggregation.
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ItemsTotal returns the merchandise portion of the order total.
func (o *Order) ItemsTotal() decimal.Decimal {
	return o.TotalAmount.Sub(o.ShippingFee)
}

// OrderDetail is an immutable snapshot of a cart line at order-creation time.
// It must not change even if the product price changes later.
type OrderDetail struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

// LineTotal returns quantity * unit price for this snapshot.
func (d *OrderDetail) LineTotal() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// OrderTimelineEvent is an append-only audit entry describing a status change
// or notable occurrence on an order. Status is free text and may carry finer
// detail than the enumerated order status.
type OrderTimelineEvent struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
