package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartModel is the GORM-specific struct for the 'carts' table. The partial
// unique index enforces at most one active cart per customer at the store
// level, so concurrent first-add-to-cart requests cannot create two.
type CartModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_carts_one_active_per_customer,where:status = 'active'"`
	Status      string          `gorm:"type:varchar(16);not null;default:'active'"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is the GORM-specific struct for the 'cart_items' table.
// UnitPrice is the snapshot taken when the line was first added.
type CartItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CartID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity   int             `gorm:"not null;check:quantity > 0"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsSelected bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
