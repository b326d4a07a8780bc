package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
// RevenueRecordedAt is the exactly-once guard for revenue aggregation.
type OrderModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	CartID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status                string          `gorm:"type:varchar(40);not null;default:'new'"`
	HeldFrom              string          `gorm:"type:varchar(40);not null;default:''"`
	TotalAmount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ShippingFee           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AddressID             uuid.UUID       `gorm:"type:uuid;not null"`
	PaymentMethodID       *uuid.UUID      `gorm:"type:uuid"`
	ShippingMethod        string          `gorm:"type:varchar(64);not null"`
	Note                  string          `gorm:"type:text"`
	TrackingNumber        string          `gorm:"type:varchar(128)"`
	EstimatedDeliveryDate *time.Time
	RevenueRecordedAt     *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderDetailModel is the GORM-specific struct for the 'order_details' table.
// Rows are immutable snapshots written at order creation.
type OrderDetailModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderDetailModel) TableName() string {
	return "order_details"
}

// OrderTimelineEventModel is the GORM-specific struct for the
// 'order_timeline_events' table. Append-only.
type OrderTimelineEventModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(64);not null"`
	Description string    `gorm:"type:text"`
	Icon        string    `gorm:"type:varchar(64)"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (OrderTimelineEventModel) TableName() string {
	return "order_timeline_events"
}
