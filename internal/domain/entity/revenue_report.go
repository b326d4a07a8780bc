package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportType is the aggregation period of a revenue report bucket.
type ReportType string

const (
	// ReportTypeDaily buckets by calendar day.
	ReportTypeDaily ReportType = "daily"
	// ReportTypeMonthly buckets by the first day of the month.
	ReportTypeMonthly ReportType = "monthly"
	// ReportTypeQuarterly buckets by the first day of the quarter.
	ReportTypeQuarterly ReportType = "quarterly"
	// ReportTypeYearly buckets by January 1st.
	ReportTypeYearly ReportType = "yearly"
)

// AllReportTypes lists every aggregation period.
func AllReportTypes() []ReportType {
	return []ReportType{ReportTypeDaily, ReportTypeMonthly, ReportTypeQuarterly, ReportTypeYearly}
}

// String returns the string representation of the ReportType.
func (t ReportType) String() string {
	return string(t)
}

// IsValid checks if the ReportType is a valid value.
func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeDaily, ReportTypeMonthly, ReportTypeQuarterly, ReportTypeYearly:
		return true
	default:
		return false
	}
}

// BucketDate truncates t to the report date identifying the bucket of this
// period type, in UTC.
func (t ReportType) BucketDate(at time.Time) time.Time {
	at = at.UTC()
	switch t {
	case ReportTypeMonthly:
		return time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	case ReportTypeQuarterly:
		quarterStart := ((int(at.Month())-1)/3)*3 + 1
		return time.Date(at.Year(), time.Month(quarterStart), 1, 0, 0, 0, 0, time.UTC)
	case ReportTypeYearly:
		return time.Date(at.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// RevenueReport is a periodic aggregate of order financials, keyed by
// (ReportDate, ReportType). Each order contributes exactly once; the caller
// guards against re-adding since AddOrder itself is not idempotent.
type RevenueReport struct {
	ID              uuid.UUID       `json:"id"`
	ReportDate      time.Time       `json:"report_date"`
	ReportType      ReportType      `json:"report_type"`
	TotalOrders     int64           `json:"total_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	ShippingRevenue decimal.Decimal `json:"shipping_revenue"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	NetRevenue      decimal.Decimal `json:"net_revenue"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewRevenueReport returns an empty bucket for the given period.
func NewRevenueReport(reportDate time.Time, reportType ReportType) *RevenueReport {
	return &RevenueReport{
		ID:              uuid.New(),
		ReportDate:      reportDate,
		ReportType:      reportType,
		TotalRevenue:    decimal.Zero,
		ShippingRevenue: decimal.Zero,
		DiscountAmount:  decimal.Zero,
		NetRevenue:      decimal.Zero,
	}
}

// AddOrder accumulates one order's financial contribution into the bucket.
// orderTotal is the merchandise total excluding the shipping fee.
func (r *RevenueReport) AddOrder(orderTotal, shippingFee, discountAmount decimal.Decimal, now time.Time) {
	r.TotalOrders++
	r.TotalRevenue = r.TotalRevenue.Add(orderTotal).Add(shippingFee)
	r.ShippingRevenue = r.ShippingRevenue.Add(shippingFee)
	r.DiscountAmount = r.DiscountAmount.Add(discountAmount)
	r.NetRevenue = r.TotalRevenue.Sub(r.DiscountAmount)
	r.UpdatedAt = now
}
