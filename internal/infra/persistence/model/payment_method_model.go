package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethodModel is the GORM-specific struct for the 'payment_methods' table.
type PaymentMethodModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"type:varchar(32);not null"`
	Label      string    `gorm:"type:varchar(128)"`
	IsDefault  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}
