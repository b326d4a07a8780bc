package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType determines how a promotion's discount amount is computed.
type DiscountType string

const (
	// DiscountTypePercentage discounts a percentage of the order total.
	DiscountTypePercentage DiscountType = "percentage"
	// DiscountTypeFixedAmount discounts a fixed amount, clamped to the order total.
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
	// DiscountTypeFreeShipping discounts the order's shipping fee.
	DiscountTypeFreeShipping DiscountType = "free_shipping"
)

// String returns the string representation of the DiscountType.
func (t DiscountType) String() string {
	return string(t)
}

// IsValid checks if the DiscountType is a valid value.
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixedAmount, DiscountTypeFreeShipping:
		return true
	default:
		return false
	}
}

// PromotionStatus represents the administrative state of a promotion.
type PromotionStatus string

const (
	// PromotionStatusActive allows the promotion to be applied.
	PromotionStatusActive PromotionStatus = "active"
	// PromotionStatusInactive disables the promotion without deleting it.
	PromotionStatusInactive PromotionStatus = "inactive"
	// PromotionStatusExpired marks promotions past their end date.
	PromotionStatusExpired PromotionStatus = "expired"
)

// String returns the string representation of the PromotionStatus.
func (s PromotionStatus) String() string {
	return string(s)
}

// IsValid checks if the PromotionStatus is a valid value.
func (s PromotionStatus) IsValid() bool {
	switch s {
	case PromotionStatusActive, PromotionStatusInactive, PromotionStatusExpired:
		return true
	default:
		return false
	}
}

// Promotion is a time-bounded discount rule with an optional usage cap.
// A nil EndDate means the window is open-ended.
type Promotion struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	DiscountType  DiscountType    `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"` // Percentage in [0,100] or a fixed amount >= 0.
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	Status        PromotionStatus `json:"status"`
	UsageLimit    *int64          `json:"usage_limit,omitempty"` // Cap on total applications across orders.
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ApplicableAt reports whether the promotion is active and its window
// contains the given instant.
func (p *Promotion) ApplicableAt(asOf time.Time) bool {
	if p.Status != PromotionStatusActive {
		return false
	}
	if p.StartDate.After(asOf) {
		return false
	}
	if p.EndDate != nil && p.EndDate.Before(asOf) {
		return false
	}

	return true
}

// OrderPromotion records a promotion applied to an order with the discount it
// produced. At most one row exists per (order, promotion) pair.
type OrderPromotion struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        uuid.UUID       `json:"order_id"`
	PromotionID    uuid.UUID       `json:"promotion_id"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ProductPromotion scopes a promotion to a single product with its own
// window and status, independent of the promotion's window. Both windows
// must be satisfied for a product-level promotion to apply.
type ProductPromotion struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	PromotionID uuid.UUID       `json:"promotion_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Status      PromotionStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ApplicableAt reports whether the product scope is active and its own
// window contains the given instant.
func (p *ProductPromotion) ApplicableAt(asOf time.Time) bool {
	if p.Status != PromotionStatusActive {
		return false
	}
	if p.StartDate.After(asOf) {
		return false
	}
	if p.EndDate != nil && p.EndDate.Before(asOf) {
		return false
	}

	return true
}
