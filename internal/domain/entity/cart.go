package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartStatus represents the lifecycle state of a shopping cart.
type CartStatus string

const (
	// CartStatusActive is the only state that accepts item mutations and checkout.
	CartStatusActive CartStatus = "active"
	// CartStatusAbandoned marks carts left idle past the retention policy.
	CartStatusAbandoned CartStatus = "abandoned"
	// CartStatusOrdered marks carts attached to an in-flight order draft.
	CartStatusOrdered CartStatus = "ordered"
	// CartStatusConverted marks carts that produced an order; terminal.
	CartStatusConverted CartStatus = "converted"
	// CartStatusDeleted marks carts removed by the customer; terminal.
	CartStatusDeleted CartStatus = "deleted"
)

// String returns the string representation of the CartStatus.
func (s CartStatus) String() string {
	return string(s)
}

// IsValid checks if the CartStatus is a valid value.
func (s CartStatus) IsValid() bool {
	switch s {
	case CartStatusActive, CartStatusAbandoned, CartStatusOrdered, CartStatusConverted, CartStatusDeleted:
		return true
	default:
		return false
	}
}

// Cart is a customer's in-progress, pre-checkout collection of products.
// A customer has at most one active cart at a time.
type Cart struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Status      CartStatus      `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"` // Sum of selected item subtotals, kept eagerly consistent.
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CartItem is a single product line in a cart. UnitPrice is snapshotted from
// the product at the time of add and never re-priced.
type CartItem struct {
	ID         uuid.UUID       `json:"id"`
	CartID     uuid.UUID       `json:"cart_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	IsSelected bool            `json:"is_selected"` // Unselected items are excluded from totals and checkout.
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Subtotal returns quantity * unit price for this line.
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
