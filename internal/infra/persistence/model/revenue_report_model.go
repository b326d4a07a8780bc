package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueReportModel is the GORM-specific struct for the 'revenue_reports'
// table, keyed by (report_date, report_type).
type RevenueReportModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ReportDate      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_revenue_reports_period"`
	ReportType      string          `gorm:"type:varchar(16);not null;uniqueIndex:idx_revenue_reports_period"`
	TotalOrders     int64           `gorm:"not null;default:0"`
	TotalRevenue    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ShippingRevenue decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	NetRevenue      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (RevenueReportModel) TableName() string {
	return "revenue_reports"
}
