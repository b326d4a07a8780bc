package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a stored payment instrument. An order may be created
// without one and have it attached later.
type PaymentMethod struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Type       string    `json:"type"` // e.g. "card", "bank_transfer", "cod"
	Label      string    `json:"label"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
