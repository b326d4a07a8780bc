package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrRevenueReportNotFound is returned when no bucket exists for a period.
var ErrRevenueReportNotFound = errors.New("revenue report not found")

// RevenueReportRepository defines the interface for revenue report buckets.
type RevenueReportRepository interface {
	// CreateReport persists a new, empty period bucket.
	CreateReport(ctx context.Context, report *entity.RevenueReport) error

	// FindReportByPeriod retrieves the bucket for (reportDate, reportType).
	FindReportByPeriod(ctx context.Context, reportDate time.Time, reportType entity.ReportType) (*entity.RevenueReport, error)

	// FindReportByPeriodForUpdate retrieves the bucket and locks it so
	// concurrent accumulations serialize.
	FindReportByPeriodForUpdate(ctx context.Context, reportDate time.Time, reportType entity.ReportType) (*entity.RevenueReport, error)

	// SaveReport persists the mutated bucket.
	SaveReport(ctx context.Context, report *entity.RevenueReport) error

	// FindReportsByType retrieves buckets of one period type within a date
	// range, oldest first.
	FindReportsByType(ctx context.Context, reportType entity.ReportType, from, to time.Time) ([]*entity.RevenueReport, error)
}
