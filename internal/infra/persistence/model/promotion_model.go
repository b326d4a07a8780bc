package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromotionModel is the GORM-specific struct for the 'promotions' table.
type PromotionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name          string          `gorm:"type:varchar(255);not null"`
	DiscountType  string          `gorm:"type:varchar(32);not null"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StartDate     time.Time       `gorm:"not null"`
	EndDate       *time.Time
	Status        string `gorm:"type:varchar(16);not null;default:'active'"`
	UsageLimit    *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (PromotionModel) TableName() string {
	return "promotions"
}

// OrderPromotionModel is the GORM-specific struct for the 'order_promotions'
// table. The unique pair index makes promotion application idempotent-guarded.
type OrderPromotionModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_promotions_pair"`
	PromotionID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_promotions_pair;index"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderPromotionModel) TableName() string {
	return "order_promotions"
}

// ProductPromotionModel is the GORM-specific struct for the
// 'product_promotions' table. Carries its own window independent of the
// promotion's window.
type ProductPromotionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_promotions_pair"`
	PromotionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_promotions_pair"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     *time.Time
	Status      string `gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductPromotionModel) TableName() string {
	return "product_promotions"
}
