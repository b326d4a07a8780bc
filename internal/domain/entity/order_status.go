// Package entity contains the core business objects of the project.
package entity

// OrderStatus represents a state in the order lifecycle.
type OrderStatus string

const (
	// OrderStatusNew is the initial state assigned at checkout.
	OrderStatusNew OrderStatus = "new"
	// OrderStatusPending indicates the order is awaiting confirmation.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusOrderPlaced indicates the order has been confirmed.
	OrderStatusOrderPlaced OrderStatus = "order_placed"
	// OrderStatusPaymentVerification indicates payment is being verified.
	OrderStatusPaymentVerification OrderStatus = "processing_payment_verification"
	// OrderStatusPaymentConfirmed indicates payment has cleared.
	OrderStatusPaymentConfirmed OrderStatus = "processing_payment_confirmed"
	// OrderStatusPacking indicates the order is being packed.
	OrderStatusPacking OrderStatus = "processing_packing"
	// OrderStatusShipped indicates the parcel left the warehouse.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusInTransit indicates the parcel is with the carrier.
	OrderStatusInTransit OrderStatus = "in_transit"
	// OrderStatusOutForDelivery indicates last-mile delivery is underway.
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	// OrderStatusDelivered is a terminal state: the parcel reached the customer.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is a terminal state reachable from any non-terminal state.
	OrderStatusCancelled OrderStatus = "cancelled"
	// OrderStatusOnHold pauses the lifecycle; the order resumes to the state it
	// was held from.
	OrderStatusOnHold OrderStatus = "on_hold"
)

// AllOrderStatuses lists every valid status, in forward-progression order.
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusNew,
		OrderStatusPending,
		OrderStatusOrderPlaced,
		OrderStatusPaymentVerification,
		OrderStatusPaymentConfirmed,
		OrderStatusPacking,
		OrderStatusShipped,
		OrderStatusInTransit,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
		OrderStatusCancelled,
		OrderStatusOnHold,
	}
}

// nextForward maps each status to its single allowed forward successor.
// Skipping ahead is disallowed: unspecified pairs are rejected rather than
// guessed permissive.
var nextForward = map[OrderStatus]OrderStatus{
	OrderStatusNew:                 OrderStatusPending,
	OrderStatusPending:             OrderStatusOrderPlaced,
	OrderStatusOrderPlaced:         OrderStatusPaymentVerification,
	OrderStatusPaymentVerification: OrderStatusPaymentConfirmed,
	OrderStatusPaymentConfirmed:    OrderStatusPacking,
	OrderStatusPacking:             OrderStatusShipped,
	OrderStatusShipped:             OrderStatusInTransit,
	OrderStatusInTransit:           OrderStatusOutForDelivery,
	OrderStatusOutForDelivery:      OrderStatusDelivered,
}

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is one of the enumerated values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusPending, OrderStatusOrderPlaced,
		OrderStatusPaymentVerification, OrderStatusPaymentConfirmed,
		OrderStatusPacking, OrderStatusShipped, OrderStatusInTransit,
		OrderStatusOutForDelivery, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusOnHold:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no outgoing transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving from s to
// next. heldFrom is the state the order was paused from and is only consulted
// when s is on_hold; it is the empty string for orders that were never held.
func (s OrderStatus) CanTransitionTo(next OrderStatus, heldFrom OrderStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s.IsTerminal() || s == next {
		return false
	}
	if s == OrderStatusOnHold {
		// A held order may only resume where it left off, or be cancelled.
		return next == OrderStatusCancelled || (heldFrom != "" && next == heldFrom)
	}
	if next == OrderStatusCancelled || next == OrderStatusOnHold {
		return true
	}

	return nextForward[s] == next
}
